package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestEnqueueMaterialUpload_FIFOAndAwait(t *testing.T) {
	var (
		mu    sync.Mutex
		files []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/lectures/9/materials" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = io.Copy(io.Discard, f)
		mu.Lock()
		files = append(files, hdr.Filename)
		mu.Unlock()
		_, _ = w.Write([]byte("uploaded"))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithUploadQueue(UploadQueueConfig{Shards: 2, QueueSize: 8}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		ack, err := c.EnqueueMaterialUpload(ctx, 9, name, []byte("data"))
		if err != nil {
			t.Fatalf("enqueue %s: %v", name, err)
		}
		if ack.Status != "enqueued" || ack.LectureID != 9 {
			t.Fatalf("unexpected ack: %+v", ack)
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.AwaitUploads(waitCtx, 9); err != nil {
		t.Fatalf("await: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(files) != 3 || files[0] != "a.pdf" || files[1] != "b.pdf" || files[2] != "c.pdf" {
		t.Fatalf("uploads out of order: %v", files)
	}
}

func TestEnqueueMaterialUpload_FailureReachesHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"teachers only"}`))
	}))
	defer srv.Close()

	failures := make(chan error, 1)
	c, err := New(srv.URL, WithUploadQueue(UploadQueueConfig{
		Shards:       1,
		MaxAttempts:  3,
		ErrorHandler: func(err error) { failures <- err },
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if _, err := c.EnqueueMaterialUpload(context.Background(), 3, "x.pdf", []byte("x")); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	select {
	case err := <-failures:
		if StatusCode(err) != http.StatusForbidden {
			t.Fatalf("expected 403 failure, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("error handler not called")
	}
}

func TestEnqueueMaterialUpload_AfterClose(t *testing.T) {
	c, err := New("http://example.com")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = c.Close()
	if _, err := c.EnqueueMaterialUpload(context.Background(), 1, "a.pdf", nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestEnqueueMaterialUpload_InvalidLecture(t *testing.T) {
	c, err := New("http://example.com")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	if _, err := c.EnqueueMaterialUpload(context.Background(), 0, "a.pdf", nil); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
