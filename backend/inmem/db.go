// Package inmem is an in-memory LMS backend. It keeps every resource in maps
// guarded by one RWMutex, assigns sequential ids, and fails with the same
// tagged errors the HTTP client produces for the real backend.
package inmem

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dlrkawo/aitutor-lms/client"
	"github.com/dlrkawo/aitutor-lms/client/tokenstore"
)

type userRecord struct {
	user         client.User
	passwordHash []byte
}

type courseRecord struct {
	course    client.Course
	teacherID int64
	students  map[int64]bool
}

type lectureRecord struct {
	lecture   client.Lecture
	courseID  int64
	materials []client.LectureMaterial
}

type assessmentRecord struct {
	detail   client.AssessmentDetail
	courseID int64
	// correct holds the option ids marked correct by the author.
	correct map[int64]bool
}

type submissionRecord struct {
	result    client.SubmissionResult
	studentID int64
}

// DB is the in-memory backend. It satisfies backend.Service.
type DB struct {
	*state
	tokens tokenstore.Store
}

// state is shared by every session of a DB.
type state struct {
	mu sync.RWMutex

	secret []byte
	cost   int
	ttl    time.Duration
	now    func() time.Time

	seq         map[string]int64
	users       map[int64]*userRecord
	courses     map[int64]*courseRecord
	lectures    map[int64]*lectureRecord
	assessments map[int64]*assessmentRecord
	submissions map[int64]*submissionRecord
}

// Option configures a DB.
type Option func(*DB)

// WithPasswordCost sets the bcrypt cost used at signup.
func WithPasswordCost(cost int) Option {
	return func(db *DB) { db.cost = cost }
}

// WithClock replaces time.Now for timestamps and token expiry.
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// WithTokenTTL sets how long issued access tokens stay valid.
func WithTokenTTL(ttl time.Duration) Option {
	return func(db *DB) { db.ttl = ttl }
}

// New returns an empty DB that writes issued tokens to tokens.
func New(tokens tokenstore.Store, opts ...Option) *DB {
	if tokens == nil {
		tokens = tokenstore.NewMemory()
	}
	db := &DB{tokens: tokens, state: &state{
		secret:      []byte(uuid.NewString()),
		cost:        bcrypt.DefaultCost,
		ttl:         time.Hour,
		now:         time.Now,
		seq:         make(map[string]int64),
		users:       make(map[int64]*userRecord),
		courses:     make(map[int64]*courseRecord),
		lectures:    make(map[int64]*lectureRecord),
		assessments: make(map[int64]*assessmentRecord),
		submissions: make(map[int64]*submissionRecord),
	}}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Tokens returns the store Login writes to.
func (db *DB) Tokens() tokenstore.Store { return db.tokens }

// Session returns a view of the same data that authenticates with tokens.
// A server uses one session per request, carrying the caller's bearer token.
func (db *DB) Session(tokens tokenstore.Store) *DB {
	return &DB{state: db.state, tokens: tokens}
}

// next returns the next id for table. Callers hold the write lock.
func (db *state) next(table string) int64 {
	db.seq[table]++
	return db.seq[table]
}

func (db *DB) timestamp() string {
	return db.now().UTC().Format(time.RFC3339)
}

func badRequest(path, format string, args ...any) error {
	return client.NewStatusError(http.StatusBadRequest, sprintf(format, args...), path)
}

// invalid mirrors the client-side request validation of the HTTP path.
func invalid(format string, args ...any) error {
	return client.NewValidationError(format, args...)
}

func requireID(id int64, field string) error {
	if id <= 0 {
		return invalid("%s is required", field)
	}
	return nil
}

func unauthorized(path, msg string) error {
	return client.NewStatusError(http.StatusUnauthorized, msg, path)
}

func forbidden(path, msg string) error {
	return client.NewStatusError(http.StatusForbidden, msg, path)
}

func notFound(path, what string) error {
	return client.NewStatusError(http.StatusNotFound, what+" not found", path)
}

func conflict(path, msg string) error {
	return client.NewStatusError(http.StatusConflict, msg, path)
}

// begin fails fast on a finished context, the way the HTTP path does.
func begin(ctx context.Context) error {
	return ctx.Err()
}
