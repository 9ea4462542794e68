package tokenstore

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the display view of an access token. It is decoded without
// signature verification and must not be used for authorization decisions.
type TokenClaims struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Claims decodes the JWT payload of token for display.
func Claims(token string) (*TokenClaims, error) {
	var mc jwt.MapClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &mc); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	out := &TokenClaims{}
	if sub, err := mc.GetSubject(); err == nil {
		out.Subject = sub
	}
	for _, k := range []string{"role", "auth", "roles"} {
		if v, ok := mc[k].(string); ok {
			out.Role = v
			break
		}
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
