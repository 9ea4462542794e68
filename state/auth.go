package state

import (
	"context"

	"github.com/dlrkawo/aitutor-lms/backend"
	"github.com/dlrkawo/aitutor-lms/client"
	"github.com/dlrkawo/aitutor-lms/client/tokenstore"
)

// Auth tracks the signed-in user. It follows the token store, so a token
// written or cleared elsewhere flips IsAuthenticated here too.
type Auth struct {
	view
	svc    backend.Auth
	tokens tokenstore.Store

	user          *client.User
	authenticated bool
	unsubscribe   func()
}

// NewAuth creates an Auth view. Call Init to load the current user.
func NewAuth(ctx context.Context, svc backend.Auth, tokens tokenstore.Store) *Auth {
	a := &Auth{svc: svc, tokens: tokens}
	a.init(ctx)
	a.authenticated = a.hasToken()
	a.unsubscribe = tokens.Subscribe(a.onToken)
	return a
}

func (a *Auth) onToken(ev tokenstore.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.authenticated = ev.Token != ""
	if !a.authenticated {
		a.user = nil
	}
}

func (a *Auth) hasToken() bool {
	tok, err := a.tokens.Token()
	return err == nil && tok != ""
}

// User is the signed-in user, nil until Init or Me succeeds.
func (a *Auth) User() *client.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

// IsAuthenticated reports whether a token is stored.
func (a *Auth) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authenticated
}

// Init loads the user when a token is stored.
func (a *Auth) Init() Result[*client.User] {
	if !a.hasToken() {
		return Result[*client.User]{Success: true}
	}
	return a.Me()
}

// Me fetches the current user. A token the backend rejects with 401 is
// cleared; any other failure keeps it.
func (a *Auth) Me() Result[*client.User] {
	return run(&a.view, "me", func(ctx context.Context) (*client.User, error) {
		u, err := a.svc.Me(ctx)
		if client.IsUnauthenticated(err) {
			_ = a.tokens.Clear()
		}
		return u, err
	}, func(u *client.User) {
		a.user = u
		a.authenticated = a.hasToken()
	})
}

// Signup registers an account. It does not sign in.
func (a *Auth) Signup(req client.SignupRequest) Result[string] {
	return run(&a.view, "signup", func(ctx context.Context) (string, error) {
		return a.svc.Signup(ctx, req)
	}, nil)
}

// Login exchanges credentials for a token, which the backend stores.
func (a *Auth) Login(req client.LoginRequest) Result[*client.TokenResponse] {
	return run(&a.view, "login", func(ctx context.Context) (*client.TokenResponse, error) {
		return a.svc.Login(ctx, req)
	}, func(*client.TokenResponse) {
		a.authenticated = a.hasToken()
	})
}

// Logout clears the stored token and the user.
func (a *Auth) Logout() Result[struct{}] {
	return run(&a.view, "logout", done(func(context.Context) error {
		return a.svc.Logout()
	}), func(struct{}) {
		a.user = nil
		a.authenticated = a.hasToken()
	})
}

// Close stops following the token store and aborts in-flight calls.
func (a *Auth) Close() {
	a.unsubscribe()
	a.view.Close()
}
