package inmem

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dlrkawo/aitutor-lms/client"
)

const (
	signupPath = "/api/auth/signup"
	loginPath  = "/api/auth/login"
	mePath     = "/api/auth/me"
)

// Signup registers an account with a bcrypt password hash.
func (db *DB) Signup(ctx context.Context, req client.SignupRequest) (string, error) {
	if err := begin(ctx); err != nil {
		return "", err
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		return "", invalid("signup: email, password and fullName are required")
	}
	if req.Role != client.RoleStudent && req.Role != client.RoleTeacher {
		return "", invalid("signup: role must be STUDENT or TEACHER")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), db.cost)
	if err != nil {
		return "", badRequest(signupPath, "password cannot be hashed: %v", err)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if db.userByEmail(email) != nil {
		return "", conflict(signupPath, "email already registered")
	}
	id := db.next("user")
	db.users[id] = &userRecord{
		user:         client.User{ID: id, Email: email, FullName: strings.TrimSpace(req.FullName), Role: req.Role},
		passwordHash: hash,
	}
	return "signup successful", nil
}

// Login checks credentials, issues a signed access token and stores it.
func (db *DB) Login(ctx context.Context, req client.LoginRequest) (*client.TokenResponse, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	if req.Email == "" || req.Password == "" {
		return nil, invalid("login: email and password are required")
	}

	db.mu.RLock()
	rec := db.userByEmail(strings.TrimSpace(req.Email))
	var (
		u    client.User
		hash []byte
	)
	if rec != nil {
		u, hash = rec.user, rec.passwordHash
	}
	db.mu.RUnlock()

	if rec == nil || bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		return nil, unauthorized(loginPath, "invalid email or password")
	}

	token, err := db.issueToken(u)
	if err != nil {
		return nil, err
	}
	// Written outside the lock: subscribers may call back into the DB.
	if err := db.tokens.SetToken(token); err != nil {
		return nil, err
	}
	return &client.TokenResponse{AccessToken: token, RefreshToken: uuid.NewString()}, nil
}

// Logout clears the stored token.
func (db *DB) Logout() error {
	return db.tokens.Clear()
}

// Me returns the account behind the stored token.
func (db *DB) Me(ctx context.Context) (*client.User, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	u, err := db.authenticate(mePath)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// IsAuthenticated reports whether a token is stored.
func (db *DB) IsAuthenticated() bool {
	tok, err := db.tokens.Token()
	return err == nil && tok != ""
}

func (db *DB) issueToken(u client.User) (string, error) {
	now := db.now()
	claims := jwt.MapClaims{
		"sub":  u.Email,
		"uid":  u.ID,
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(db.ttl).Unix(),
		"jti":  uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(db.secret)
}

// authenticate resolves the stored token to an account or fails with 401.
func (db *DB) authenticate(path string) (client.User, error) {
	tok, err := db.tokens.Token()
	if err != nil {
		return client.User{}, err
	}
	if tok == "" {
		return client.User{}, unauthorized(path, "authentication required")
	}

	parsed, err := jwt.Parse(tok, func(*jwt.Token) (any, error) { return db.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(db.now),
	)
	if err != nil || !parsed.Valid {
		return client.User{}, unauthorized(path, "invalid or expired token")
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return client.User{}, unauthorized(path, "invalid or expired token")
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	rec := db.userByEmail(sub)
	if rec == nil {
		return client.User{}, unauthorized(path, "account no longer exists")
	}
	return rec.user, nil
}

// authorize authenticates and, when role is set, requires it.
func (db *DB) authorize(path string, role client.Role) (client.User, error) {
	u, err := db.authenticate(path)
	if err != nil {
		return u, err
	}
	if role != "" && u.Role != role {
		return u, forbidden(path, strings.ToLower(string(role))+" role required")
	}
	return u, nil
}

// userByEmail scans users. Callers hold the lock.
func (db *DB) userByEmail(email string) *userRecord {
	for _, rec := range db.users {
		if strings.EqualFold(rec.user.Email, email) {
			return rec
		}
	}
	return nil
}
