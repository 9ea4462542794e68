package api

import (
	"context"
	"net/http"

	"github.com/dlrkawo/aitutor-lms/client/internal/types"
)

// Signup registers a new account. The backend answers with a text message.
func Signup(ctx context.Context, ep Endpoint, req *types.SignupRequest) (string, error) {
	if err := types.ValidateBody("signup", req); err != nil {
		return "", err
	}
	return call[string](ctx, ep, Request{Method: http.MethodPost, Path: "/api/auth/signup", Body: req}, "signup")
}

// Login exchanges credentials for tokens. It does not touch the token store;
// persisting the access token is the caller's job.
func Login(ctx context.Context, ep Endpoint, req *types.LoginRequest) (*types.TokenResponse, error) {
	if err := types.ValidateBody("login", req); err != nil {
		return nil, err
	}
	tr, err := call[types.TokenResponse](ctx, ep, Request{Method: http.MethodPost, Path: "/api/auth/login", Body: req}, "login")
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

// Me returns the account behind the current bearer token.
func Me(ctx context.Context, ep Endpoint) (*types.User, error) {
	u, err := call[types.User](ctx, ep, Request{Method: http.MethodGet, Path: "/api/auth/me", IncludeAuth: true}, "get me")
	if err != nil {
		return nil, err
	}
	return &u, nil
}
