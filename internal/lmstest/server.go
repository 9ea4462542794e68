// Package lmstest runs a fake LMS backend over HTTP for tests. Routes are
// served by gorilla/mux on top of the in-memory backend, so the real client
// can be exercised end to end.
package lmstest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/dlrkawo/aitutor-lms/backend/inmem"
	"github.com/dlrkawo/aitutor-lms/client"
	"github.com/dlrkawo/aitutor-lms/client/tokenstore"
)

// Seeded accounts created by SeedAccounts.
const (
	TeacherEmail    = "teacher@lms.test"
	TeacherPassword = "teacher-pw"
	StudentEmail    = "student@lms.test"
	StudentPassword = "student-pw"
)

// tunnelOfflinePage is what the tunnel serves when the backend agent is gone.
const tunnelOfflinePage = `<!DOCTYPE html><html><body>ERR_NGROK_3200: The endpoint is offline.</body></html>`

// Server is a running fake backend.
type Server struct {
	*httptest.Server
	DB *inmem.DB

	offline atomic.Bool

	mu       sync.Mutex
	requests []*http.Request
}

// New starts a fake backend. Passwords are hashed at bcrypt.MinCost unless
// opts say otherwise.
func New(opts ...inmem.Option) *Server {
	opts = append([]inmem.Option{inmem.WithPasswordCost(bcrypt.MinCost)}, opts...)
	s := &Server{DB: inmem.New(tokenstore.NewMemory(), opts...)}
	s.Server = httptest.NewServer(s.Handler())
	return s
}

// SetOffline makes every request answer with the tunnel's offline page.
func (s *Server) SetOffline(offline bool) { s.offline.Store(offline) }

// Requests returns clones of the requests served so far.
func (s *Server) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

// SeedAccounts signs up one teacher and one student.
func (s *Server) SeedAccounts() error {
	ctx := context.Background()
	if _, err := s.DB.Signup(ctx, client.SignupRequest{Email: TeacherEmail, Password: TeacherPassword, FullName: "Test Teacher", Role: client.RoleTeacher}); err != nil {
		return err
	}
	_, err := s.DB.Signup(ctx, client.SignupRequest{Email: StudentEmail, Password: StudentPassword, FullName: "Test Student", Role: client.RoleStudent})
	return err
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(recoverer, s.record, s.tunnel)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/signup", s.signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", s.me).Methods(http.MethodGet)

	api.HandleFunc("/courses", s.listCourses).Methods(http.MethodGet)
	api.HandleFunc("/courses", s.createCourse).Methods(http.MethodPost)
	api.HandleFunc("/courses/{id:[0-9]+}", s.getCourse).Methods(http.MethodGet)
	api.HandleFunc("/courses/{id:[0-9]+}", s.updateCourse).Methods(http.MethodPut)
	api.HandleFunc("/courses/{id:[0-9]+}", s.deleteCourse).Methods(http.MethodDelete)
	api.HandleFunc("/courses/{id:[0-9]+}/enroll", s.enrollCourse).Methods(http.MethodPost)
	api.HandleFunc("/courses/{id:[0-9]+}/lectures", s.createLecture).Methods(http.MethodPost)

	api.HandleFunc("/lectures/{id:[0-9]+}", s.getLecture).Methods(http.MethodGet)
	api.HandleFunc("/lectures/{id:[0-9]+}", s.updateLecture).Methods(http.MethodPut)
	api.HandleFunc("/lectures/{id:[0-9]+}", s.deleteLecture).Methods(http.MethodDelete)
	api.HandleFunc("/lectures/{id:[0-9]+}/generate-content", s.generateContent).Methods(http.MethodPost)
	api.HandleFunc("/lectures/{id:[0-9]+}/materials", s.uploadMaterial).Methods(http.MethodPost)
	api.HandleFunc("/lectures/{id:[0-9]+}/inquiries", s.submitInquiry).Methods(http.MethodPost)
	api.HandleFunc("/lectures/{id:[0-9]+}/self-diagnosis-quiz", s.generateQuiz).Methods(http.MethodPost)

	api.HandleFunc("/assessments/courses/{id:[0-9]+}", s.listAssessments).Methods(http.MethodGet)
	api.HandleFunc("/assessments/courses/{id:[0-9]+}", s.createAssessment).Methods(http.MethodPost)
	api.HandleFunc("/assessments/{id:[0-9]+}", s.getAssessment).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id:[0-9]+}/submissions", s.listSubmissions).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id:[0-9]+}/submissions", s.createSubmission).Methods(http.MethodPost)
	api.HandleFunc("/submissions/{id:[0-9]+}", s.getSubmission).Methods(http.MethodGet)

	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Clone(r.Context()))
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) tunnel(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.offline.Load() {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(tunnelOfflinePage))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// session authenticates the request with its bearer token, if any.
func (s *Server) session(r *http.Request) *inmem.DB {
	tokens := tokenstore.NewMemory()
	if tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		_ = tokens.SetToken(tok)
	}
	return s.DB.Session(tokens)
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// decode reads a JSON body into v, answering 400 on malformed input.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}
