package shardqueue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	lmserrors "github.com/dlrkawo/aitutor-lms/client/internal/errors"
)

func TestShardExecutor_FIFOPerKey(t *testing.T) {
	t.Parallel()
	ex := NewShardExecutor(Config{Shards: 2, QueueSize: 16})
	defer ex.Stop()

	var (
		mu    sync.Mutex
		order []int
	)
	for i := 0; i < 10; i++ {
		i := i
		if err := ex.Submit(context.Background(), "lecture:1", JobFunc(func(context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if err := ex.Barrier(context.Background(), "lecture:1"); err != nil {
		t.Fatalf("barrier: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	for i, v := range order {
		if v != i {
			t.Fatalf("out of order: %v", order)
		}
	}
	if len(order) != 10 {
		t.Fatalf("expected 10 jobs, got %d", len(order))
	}
}

func TestShardExecutor_RetriesRecoverableOnly(t *testing.T) {
	t.Parallel()
	var handled int32
	cfg := Config{Shards: 1, QueueSize: 4, MaxAttempts: 3, BaseBackoff: time.Millisecond, MaxInterval: 5 * time.Millisecond}
	cfg.ErrorHandler = func(error) { atomic.AddInt32(&handled, 1) }
	ex := NewShardExecutor(cfg)
	defer ex.Stop()

	var recoverable int32
	_ = ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		if atomic.AddInt32(&recoverable, 1) < 3 {
			return lmserrors.NewHTTPError(503, "Service Unavailable", "busy", "", "")
		}
		return nil
	}))

	var irrecoverable int32
	_ = ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		atomic.AddInt32(&irrecoverable, 1)
		return lmserrors.NewHTTPError(403, "Forbidden", "teachers only", "", "")
	}))

	if err := ex.Barrier(context.Background(), "k"); err != nil {
		t.Fatalf("barrier: %v", err)
	}
	if got := atomic.LoadInt32(&recoverable); got != 3 {
		t.Fatalf("recoverable attempts = %d, want 3", got)
	}
	if got := atomic.LoadInt32(&irrecoverable); got != 1 {
		t.Fatalf("irrecoverable attempts = %d, want 1", got)
	}
	if got := atomic.LoadInt32(&handled); got != 1 {
		t.Fatalf("error handler calls = %d, want 1", got)
	}
}

func TestShardExecutor_DefaultRunsOnce(t *testing.T) {
	t.Parallel()
	ex := NewShardExecutor(Config{Shards: 1})
	defer ex.Stop()

	var runs int32
	_ = ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		atomic.AddInt32(&runs, 1)
		return errors.New("network down")
	}))
	if err := ex.Barrier(context.Background(), "k"); err != nil {
		t.Fatalf("barrier: %v", err)
	}
	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Fatalf("runs = %d, want 1", got)
	}
}

func TestShardExecutor_QueueFull(t *testing.T) {
	t.Parallel()
	ex := NewShardExecutor(Config{Shards: 1, QueueSize: 1, EnqueueTimeout: 10 * time.Millisecond})
	defer ex.Stop()

	block, unblock := context.WithCancel(context.Background())
	defer unblock()
	started := make(chan struct{})
	_ = ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		close(started)
		<-block.Done()
		return nil
	}))
	<-started

	_ = ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error { return nil }))
	err := ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error { return nil }))
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestShardExecutor_SkipsCanceledJob(t *testing.T) {
	t.Parallel()
	var handled int32
	cfg := Config{Shards: 1, QueueSize: 4}
	cfg.ErrorHandler = func(err error) {
		if errors.Is(err, context.Canceled) {
			atomic.AddInt32(&handled, 1)
		}
	}
	ex := NewShardExecutor(cfg)
	defer ex.Stop()

	block, unblock := context.WithCancel(context.Background())
	started := make(chan struct{})
	_ = ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		close(started)
		<-block.Done()
		return nil
	}))
	<-started

	var ran int32
	jobCtx, cancelJob := context.WithCancel(context.Background())
	_ = ex.Submit(jobCtx, "k", JobFunc(func(context.Context) error {
		atomic.StoreInt32(&ran, 1)
		return nil
	}))
	cancelJob()
	unblock()

	if err := ex.Barrier(context.Background(), "k"); err != nil {
		t.Fatalf("barrier: %v", err)
	}
	if atomic.LoadInt32(&ran) == 1 {
		t.Fatal("canceled job must not run")
	}
	if atomic.LoadInt32(&handled) != 1 {
		t.Fatal("expected error handler for canceled job")
	}
}

func TestShardExecutor_PanicKeepsWorkerAlive(t *testing.T) {
	t.Parallel()
	ex := NewShardExecutor(Config{Shards: 1, QueueSize: 4})
	defer ex.Stop()

	_ = ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error { panic("boom") }))
	ran := make(chan struct{})
	_ = ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error { close(ran); return nil }))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive a panicking job")
	}
}

func TestShardExecutor_SubmitAfterStop(t *testing.T) {
	t.Parallel()
	ex := NewShardExecutor(Config{})
	ex.Stop()
	ex.Stop()
	if err := ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error { return nil })); !errors.Is(err, ErrExecutorClosed) {
		t.Fatalf("expected ErrExecutorClosed, got %v", err)
	}
}

func TestQueueFullError_Is(t *testing.T) {
	t.Parallel()
	e := &QueueFullError{Shard: 3, Length: 10, Capacity: 16}
	if !errors.Is(e, ErrQueueFull) || errors.Is(e, ErrExecutorClosed) {
		t.Fatal("QueueFullError must match only ErrQueueFull")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LMS_UPLOAD_SHARDS", "8")
	t.Setenv("LMS_UPLOAD_QUEUE_SIZE", "256")
	t.Setenv("LMS_UPLOAD_MAX_ATTEMPTS", "5")
	t.Setenv("LMS_UPLOAD_BASE_BACKOFF", "50ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Shards != 8 || cfg.QueueSize != 256 || cfg.MaxAttempts != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.BaseBackoff != 50*time.Millisecond || cfg.MaxInterval != 10*time.Second {
		t.Fatalf("unexpected backoff settings: base=%v max=%v", cfg.BaseBackoff, cfg.MaxInterval)
	}
}
