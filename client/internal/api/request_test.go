package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	lmserrors "github.com/dlrkawo/aitutor-lms/client/internal/errors"
)

func TestDo_MultipartKeepsBoundaryContentType(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "multipart/form-data; boundary=") {
			t.Errorf("unexpected content type: %q", ct)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		if hdr.Filename != "week1.pdf" || string(b) != "%PDF-1.4" {
			t.Errorf("unexpected file %q: %q", hdr.Filename, b)
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("uploaded"))
	}))
	defer srv.Close()

	form := &Multipart{Files: []FilePart{{Field: "file", FileName: "week1.pdf", Content: strings.NewReader("%PDF-1.4")}}}
	p, err := Do(context.Background(), endpointFor(srv, "T"), Request{Method: http.MethodPost, Path: "/api/lectures/1/materials", Body: form, IncludeAuth: true})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if p.Text() != "uploaded" {
		t.Fatalf("unexpected text: %q", p.Text())
	}
}

func TestDo_JSONBodySetsJSONContentType(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %q", ct)
		}
		if r.Header.Get(TunnelWarningHeader) != "true" {
			t.Errorf("missing tunnel warning header")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if _, err := Do(context.Background(), endpointFor(srv, ""), Request{Method: http.MethodPost, Path: "/x", Body: map[string]string{"a": "b"}}); err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestDo_BearerHeader(t *testing.T) {
	t.Parallel()
	var (
		mu  sync.Mutex
		got []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, r.Header.Get("Authorization"))
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ctx := context.Background()
	cases := []struct {
		token       string
		includeAuth bool
		want        string
	}{
		{"T", true, "Bearer T"},
		{"", true, ""},
		{"T", false, ""},
	}
	for _, c := range cases {
		if _, err := Do(ctx, endpointFor(srv, c.token), Request{Method: http.MethodGet, Path: "/api/auth/me", IncludeAuth: c.includeAuth}); err != nil {
			t.Fatalf("Do: %v", err)
		}
	}
	mu.Lock()
	defer mu.Unlock()
	for i, c := range cases {
		if got[i] != c.want {
			t.Fatalf("case %d: Authorization=%q want %q", i, got[i], c.want)
		}
	}
}

func TestDo_NoContentSkipsParse(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	p, err := Do(context.Background(), endpointFor(srv, ""), Request{Method: http.MethodDelete, Path: "/api/courses/1"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !p.Empty() {
		t.Fatal("expected empty payload")
	}
	var v struct{ A int }
	if err := p.Decode(&v); err != nil || v.A != 0 {
		t.Fatalf("decode empty payload: %v %+v", err, v)
	}
}

func TestDo_JSONAndTextResponses(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/json" {
			w.Header().Set("Content-Type", "application/json;charset=UTF-8")
			_, _ = w.Write([]byte(`{"courseId":7,"title":"Go"}`))
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("enrolled"))
	}))
	defer srv.Close()

	ep := endpointFor(srv, "")
	p, err := Do(context.Background(), ep, Request{Method: http.MethodGet, Path: "/json"})
	if err != nil {
		t.Fatalf("Do json: %v", err)
	}
	var c struct {
		ID    int64  `json:"courseId"`
		Title string `json:"title"`
	}
	if !p.IsJSON() || p.Decode(&c) != nil || c.ID != 7 || c.Title != "Go" {
		t.Fatalf("unexpected json payload: %+v", c)
	}

	p, err = Do(context.Background(), ep, Request{Method: http.MethodGet, Path: "/text"})
	if err != nil {
		t.Fatalf("Do text: %v", err)
	}
	var s string
	if p.IsJSON() || p.Decode(&s) != nil || s != "enrolled" {
		t.Fatalf("unexpected text payload: %q", s)
	}
}

func TestDo_HTTPErrorCarriesStatusAndMessage(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"C404","message":"course 9 does not exist"}`))
	}))
	defer srv.Close()

	_, err := Do(context.Background(), endpointFor(srv, ""), Request{Method: http.MethodGet, Path: "/api/courses/9"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "course 9 does not exist") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	e, ok := lmserrors.As(err)
	if !ok || e.Kind != lmserrors.KindHTTPStatus || e.StatusCode != 404 || e.Status != "Not Found" {
		t.Fatalf("unexpected error: %#v", err)
	}
}

func TestDo_HTTPErrorFallsBackToTitleAndText(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/title" {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"title":"Bad Request body"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("stack overflow"))
	}))
	defer srv.Close()

	ep := endpointFor(srv, "")
	_, err := Do(context.Background(), ep, Request{Method: http.MethodGet, Path: "/title"})
	if err == nil || !strings.Contains(err.Error(), "Bad Request body") {
		t.Fatalf("expected title in message, got %v", err)
	}
	_, err = Do(context.Background(), ep, Request{Method: http.MethodGet, Path: "/text"})
	if err == nil || !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "stack overflow") {
		t.Fatalf("expected text in message, got %v", err)
	}
}

func TestDo_TunnelPages(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if r.URL.Path == "/offline" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("<!DOCTYPE html><html>ERR_NGROK_3200 endpoint is offline</html>"))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<!DOCTYPE html><html>something went wrong</html>"))
	}))
	defer srv.Close()

	ep := endpointFor(srv, "")
	_, err := Do(context.Background(), ep, Request{Method: http.MethodGet, Path: "/offline"})
	e, ok := lmserrors.As(err)
	if !ok || e.Kind != lmserrors.KindProxyUnavailable || !e.Offline {
		t.Fatalf("expected offline proxy error, got %v", err)
	}
	_, err = Do(context.Background(), ep, Request{Method: http.MethodGet, Path: "/other"})
	e, ok = lmserrors.As(err)
	if !ok || e.Kind != lmserrors.KindProxyUnavailable || e.Offline {
		t.Fatalf("expected generic proxy error, got %v", err)
	}
}

func TestDo_NetworkFailureNamesURL(t *testing.T) {
	t.Parallel()
	for _, mode := range []Mode{ModeProxy, ModeDirect} {
		ep := Endpoint{HTTP: &http.Client{Transport: &errRT{}}, BaseURL: "http://lms.invalid", Mode: mode}
		_, err := Do(context.Background(), ep, Request{Method: http.MethodPost, Path: "/api/courses", Body: map[string]string{"title": "X"}})
		if lmserrors.KindOf(err) != lmserrors.KindNetwork {
			t.Fatalf("%s: expected network error, got %v", mode, err)
		}
		if !strings.Contains(err.Error(), "http://lms.invalid/api/courses") {
			t.Fatalf("%s: URL missing from %q", mode, err.Error())
		}
	}
}

func TestDo_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ep := Endpoint{HTTP: &http.Client{Transport: &errRT{}}, BaseURL: "http://lms.invalid", Mode: ModeDirect}
	if _, err := Do(ctx, ep, Request{Method: http.MethodGet, Path: "/api/courses"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDo_UnencodableBody(t *testing.T) {
	t.Parallel()
	ep := Endpoint{HTTP: &http.Client{Transport: &errRT{}}, BaseURL: "http://lms.invalid", Mode: ModeDirect}
	_, err := Do(context.Background(), ep, Request{Method: http.MethodPost, Path: "/x", Body: map[string]any{"f": func() {}}})
	if lmserrors.KindOf(err) != lmserrors.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
