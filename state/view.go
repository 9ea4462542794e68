// Package state holds per-resource views over a backend: a state slot, a
// loading flag and the last error, updated by one method per operation.
// Views share nothing; each is bound to a parent context and stops
// applying results once closed.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClosed is returned by operations on a closed view.
var ErrClosed = errors.New("state: view closed")

// Result is the outcome of one view operation. Error is Err's message;
// Err keeps the typed error for errors.As and the client.Is* helpers.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

func failure[T any](err error) Result[T] {
	return Result[T]{Error: err.Error(), Err: err}
}

type view struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	pending int
	err     string
	closed  bool
}

func (v *view) init(parent context.Context) {
	v.ctx, v.cancel = context.WithCancel(parent)
}

// Loading reports whether an operation is in flight.
func (v *view) Loading() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.pending > 0
}

// Err is the message of the last failed operation, or "".
func (v *view) Err() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.err
}

// Close aborts in-flight operations. Their results are dropped.
func (v *view) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	v.cancel()
}

// run performs one operation: mark loading and clear the error, call, then
// record the error or apply the data under the view lock.
func run[T any](v *view, op string, call func(context.Context) (T, error), apply func(T)) Result[T] {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return failure[T](ErrClosed)
	}
	v.pending++
	v.err = ""
	v.mu.Unlock()

	data, err := call(v.ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending--
	if v.closed {
		return failure[T](ErrClosed)
	}
	if err != nil {
		log.Debug().Err(err).Str("op", op).Msg("operation failed")
		v.err = err.Error()
		return failure[T](err)
	}
	if apply != nil {
		apply(data)
	}
	return Result[T]{Success: true, Data: data}
}

// done adapts calls without a payload.
func done(call func(context.Context) error) func(context.Context) (struct{}, error) {
	return func(ctx context.Context) (struct{}, error) {
		return struct{}{}, call(ctx)
	}
}
