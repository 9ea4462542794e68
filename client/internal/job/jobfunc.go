// Package job adapts closures to the shard executor's Job interface.
package job

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilJobFunc is returned when a job has no function to run.
var ErrNilJobFunc = errors.New("nil job func")

// Upload is a queued material upload for one lecture.
type Upload struct {
	LectureID int64
	FileName  string
	fn        func(context.Context) error
}

// Run executes the upload attempt.
func (u *Upload) Run(ctx context.Context) error {
	if u == nil || u.fn == nil {
		return fmt.Errorf("upload job: %w", ErrNilJobFunc)
	}
	if err := u.fn(ctx); err != nil {
		return fmt.Errorf("upload %q to lecture %d: %w", u.FileName, u.LectureID, err)
	}
	return nil
}

// NewUpload wraps fn as the upload of fileName to lectureID. fn may be
// called more than once when the executor retries.
func NewUpload(lectureID int64, fileName string, fn func(context.Context) error) *Upload {
	return &Upload{LectureID: lectureID, FileName: fileName, fn: fn}
}
