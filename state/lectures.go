package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/dlrkawo/aitutor-lms/backend"
	"github.com/dlrkawo/aitutor-lms/client"
)

// ErrNoUploadQueue is returned by QueueUploads when the backend cannot queue
// uploads.
var ErrNoUploadQueue = errors.New("state: backend has no upload queue")

// MaterialFile is one file handed to QueueUploads.
type MaterialFile struct {
	Name    string
	Content []byte
}

// Lectures holds the lectures of one course, the lecture last opened and
// the materials uploaded through this view.
type Lectures struct {
	view
	courses backend.Courses
	svc     backend.Lectures

	lectures  []client.Lecture
	current   *client.Lecture
	materials []client.LectureMaterial
}

// NewLectures creates a Lectures view. Listing goes through the course
// detail, which carries the lectures.
func NewLectures(ctx context.Context, courses backend.Courses, svc backend.Lectures) *Lectures {
	l := &Lectures{courses: courses, svc: svc}
	l.init(ctx)
	return l
}

// Lectures returns a copy of the list.
func (l *Lectures) Lectures() []client.Lecture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.lectures)
}

// Current returns the lecture last fetched or changed.
func (l *Lectures) Current() *client.Lecture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Materials returns the materials uploaded through this view.
func (l *Lectures) Materials() []client.LectureMaterial {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.materials)
}

// Fetch replaces the list with the lectures of a course.
func (l *Lectures) Fetch(courseID int64) Result[[]client.Lecture] {
	return run(&l.view, "list lectures", func(ctx context.Context) ([]client.Lecture, error) {
		d, err := l.courses.GetCourse(ctx, courseID)
		if err != nil {
			return nil, err
		}
		return d.Lectures, nil
	}, func(list []client.Lecture) {
		l.lectures = list
	})
}

// Get loads one lecture.
func (l *Lectures) Get(lectureID int64) Result[*client.Lecture] {
	return run(&l.view, "get lecture", func(ctx context.Context) (*client.Lecture, error) {
		return l.svc.GetLecture(ctx, lectureID)
	}, func(lec *client.Lecture) {
		l.current = lec
	})
}

// Create adds a lecture to a course and appends it to the list.
func (l *Lectures) Create(courseID int64, req client.CreateLectureRequest) Result[*client.Lecture] {
	return run(&l.view, "create lecture", func(ctx context.Context) (*client.Lecture, error) {
		return l.svc.CreateLecture(ctx, courseID, req)
	}, func(lec *client.Lecture) {
		l.lectures = append(l.lectures, *lec)
		l.current = lec
	})
}

// Update patches a lecture.
func (l *Lectures) Update(lectureID int64, req client.UpdateLectureRequest) Result[*client.Lecture] {
	return run(&l.view, "update lecture", func(ctx context.Context) (*client.Lecture, error) {
		return l.svc.UpdateLecture(ctx, lectureID, req)
	}, func(lec *client.Lecture) {
		for i := range l.lectures {
			if l.lectures[i].ID == lectureID {
				l.lectures[i] = *lec
			}
		}
		if l.current != nil && l.current.ID == lectureID {
			l.current = lec
		}
	})
}

// Delete removes a lecture.
func (l *Lectures) Delete(lectureID int64) Result[struct{}] {
	return run(&l.view, "delete lecture", done(func(ctx context.Context) error {
		return l.svc.DeleteLecture(ctx, lectureID)
	}), func(struct{}) {
		l.lectures = slices.DeleteFunc(l.lectures, func(x client.Lecture) bool { return x.ID == lectureID })
		if l.current != nil && l.current.ID == lectureID {
			l.current = nil
		}
	})
}

// GenerateContent starts AI content generation for a lecture.
func (l *Lectures) GenerateContent(lectureID int64) Result[string] {
	return run(&l.view, "generate content", func(ctx context.Context) (string, error) {
		return l.svc.GenerateLectureContent(ctx, lectureID)
	}, nil)
}

// Upload sends a material file and records it with the returned URL.
func (l *Lectures) Upload(lectureID int64, fileName string, content io.Reader) Result[string] {
	return run(&l.view, "upload material", func(ctx context.Context) (string, error) {
		return l.svc.UploadMaterial(ctx, lectureID, fileName, content)
	}, func(url string) {
		l.materials = append(l.materials, client.LectureMaterial{
			DisplayName:  fileName,
			MaterialType: client.MaterialFile,
			URL:          url,
		})
	})
}

// QueueUploads queues files on the backend's upload executor in order and
// waits until they have run. Failures of single uploads go to the queue's
// ErrorHandler; the result reports enqueue and wait errors only. Queued
// uploads return no URL, so Materials is left unchanged.
func (l *Lectures) QueueUploads(lectureID int64, files []MaterialFile) Result[[]client.EnqueueAck] {
	return run(&l.view, "queue uploads", func(ctx context.Context) ([]client.EnqueueAck, error) {
		q, ok := l.svc.(backend.UploadQueue)
		if !ok {
			return nil, ErrNoUploadQueue
		}
		acks := make([]client.EnqueueAck, 0, len(files))
		for _, f := range files {
			ack, err := q.EnqueueMaterialUpload(ctx, lectureID, f.Name, f.Content)
			if err != nil {
				return nil, fmt.Errorf("enqueue %s: %w", f.Name, err)
			}
			acks = append(acks, *ack)
		}
		if err := q.AwaitUploads(ctx, lectureID); err != nil {
			return nil, err
		}
		return acks, nil
	}, nil)
}
