package shardqueue

import (
	"errors"
	"fmt"
)

// ErrQueueFull reports transient back-pressure.
var ErrQueueFull = errors.New("upload queue full")

// ErrExecutorClosed reports that the executor was stopped.
var ErrExecutorClosed = errors.New("upload executor closed")

// QueueFullError carries diagnostics while satisfying errors.Is(_, ErrQueueFull).
type QueueFullError struct {
	Shard    int
	Length   int
	Capacity int
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("upload queue %d full (len=%d cap=%d)", e.Shard, e.Length, e.Capacity)
}

func (e *QueueFullError) Is(target error) bool { return target == ErrQueueFull }
