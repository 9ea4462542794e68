package api

import (
	"context"
	"fmt"
)

// call runs r and decodes the payload into T.
func call[T any](ctx context.Context, ep Endpoint, r Request, op string) (T, error) {
	var out T
	p, err := Do(ctx, ep, r)
	if err != nil {
		return out, err
	}
	if err := p.Decode(&out); err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// exec runs r and discards the payload.
func exec(ctx context.Context, ep Endpoint, r Request) error {
	_, err := Do(ctx, ep, r)
	return err
}
