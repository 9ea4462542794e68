package client

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCourseOperations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/courses":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"courseId":1,"title":"Go","teacherName":"Kim"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/courses":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"courseId":2,"title":"Rust","teacherName":"Kim","lectures":[]}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/courses/2":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/api/courses/1/enroll":
			_, _ = w.Write([]byte("enrolled"))
		case r.Method == http.MethodGet && r.URL.Path == "/api/courses/404":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"course not found"}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	list, err := c.ListCourses(ctx)
	if err != nil || len(list) != 1 || list[0].Title != "Go" {
		t.Fatalf("list: %+v %v", list, err)
	}

	created, err := c.CreateCourse(ctx, CourseRequest{Title: "Rust"})
	if err != nil || created.ID != 2 {
		t.Fatalf("create: %+v %v", created, err)
	}

	if err := c.DeleteCourse(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}

	msg, err := c.EnrollCourse(ctx, 1)
	if err != nil || msg != "enrolled" {
		t.Fatalf("enroll: %q %v", msg, err)
	}

	_, err = c.GetCourse(ctx, 404)
	if StatusCode(err) != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "course not found") {
		t.Fatalf("error text should carry status and message: %v", err)
	}

	if _, err := c.CreateCourse(ctx, CourseRequest{}); !IsValidation(err) {
		t.Fatalf("expected validation error for missing title, got %v", err)
	}
	if _, err := c.GetCourse(ctx, 0); !IsValidation(err) {
		t.Fatalf("expected validation error for zero id, got %v", err)
	}
}

func TestNetworkErrorNamesURL(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	c, err := New("http://"+addr, WithMode(ModeProxy))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	_, err = c.CreateCourse(context.Background(), CourseRequest{Title: "X"})
	if !IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if !strings.Contains(err.Error(), "http://"+addr+"/api/courses") {
		t.Fatalf("error should name the attempted URL: %v", err)
	}
}

func TestCanceledContextIsNotNetworkError(t *testing.T) {
	c, err := New("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.ListCourses(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
