package inmem

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/dlrkawo/aitutor-lms/client"
)

// CreateLecture adds a PENDING lecture to an owned course.
func (db *DB) CreateLecture(ctx context.Context, courseID int64, req client.CreateLectureRequest) (*client.Lecture, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	if err := requireID(courseID, "courseId"); err != nil {
		return nil, err
	}
	path := coursePath(courseID) + "/lectures"
	u, err := db.authorize(path, client.RoleTeacher)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalid("lecture: title is required")
	}
	if req.WeekNumber < 1 {
		return nil, invalid("lecture: weekNumber must be at least 1")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, err := db.ownedCourse(path, courseID, u); err != nil {
		return nil, err
	}
	id := db.next("lecture")
	rec := &lectureRecord{
		lecture: client.Lecture{
			ID:                id,
			Title:             req.Title,
			WeekNumber:        req.WeekNumber,
			Description:       req.Description,
			AIGeneratedStatus: client.AIStatusPending,
		},
		courseID: courseID,
	}
	db.lectures[id] = rec
	l := copyLecture(rec.lecture)
	return &l, nil
}

// GetLecture returns a lecture with its generated contents.
func (db *DB) GetLecture(ctx context.Context, lectureID int64) (*client.Lecture, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	if err := requireID(lectureID, "lectureId"); err != nil {
		return nil, err
	}
	path := lecturePath(lectureID)
	if _, err := db.authenticate(path); err != nil {
		return nil, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	rec, ok := db.lectures[lectureID]
	if !ok {
		return nil, notFound(path, "lecture")
	}
	l := copyLecture(rec.lecture)
	return &l, nil
}

// UpdateLecture applies the non-nil fields of req.
func (db *DB) UpdateLecture(ctx context.Context, lectureID int64, req client.UpdateLectureRequest) (*client.Lecture, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	if err := requireID(lectureID, "lectureId"); err != nil {
		return nil, err
	}
	path := lecturePath(lectureID)
	u, err := db.authorize(path, client.RoleTeacher)
	if err != nil {
		return nil, err
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, invalid("lecture: title must not be empty")
	}
	if req.WeekNumber != nil && *req.WeekNumber < 1 {
		return nil, invalid("lecture: weekNumber must be at least 1")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	rec, err := db.ownedLecture(path, lectureID, u)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		rec.lecture.Title = *req.Title
	}
	if req.WeekNumber != nil {
		rec.lecture.WeekNumber = *req.WeekNumber
	}
	if req.Description != nil {
		rec.lecture.Description = *req.Description
	}
	l := copyLecture(rec.lecture)
	return &l, nil
}

// DeleteLecture removes a lecture of an owned course.
func (db *DB) DeleteLecture(ctx context.Context, lectureID int64) error {
	if err := begin(ctx); err != nil {
		return err
	}
	if err := requireID(lectureID, "lectureId"); err != nil {
		return err
	}
	path := lecturePath(lectureID)
	u, err := db.authorize(path, client.RoleTeacher)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, err := db.ownedLecture(path, lectureID, u); err != nil {
		return err
	}
	delete(db.lectures, lectureID)
	return nil
}

// GenerateLectureContent fills the script, summary and visual aid of a
// lecture from its title and description and marks it COMPLETED.
func (db *DB) GenerateLectureContent(ctx context.Context, lectureID int64) (string, error) {
	if err := begin(ctx); err != nil {
		return "", err
	}
	if err := requireID(lectureID, "lectureId"); err != nil {
		return "", err
	}
	path := lecturePath(lectureID) + "/generate-content"
	u, err := db.authorize(path, client.RoleTeacher)
	if err != nil {
		return "", err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	rec, err := db.ownedLecture(path, lectureID, u)
	if err != nil {
		return "", err
	}
	l := &rec.lecture
	topic := l.Title
	if l.Description != "" {
		topic = l.Title + ": " + l.Description
	}
	l.Contents = []client.LectureContent{
		{ID: db.next("content"), ContentType: client.ContentScript, ContentData: fmt.Sprintf("Week %d lecture script on %s.", l.WeekNumber, topic)},
		{ID: db.next("content"), ContentType: client.ContentSummary, ContentData: fmt.Sprintf("Summary of %s.", topic)},
		{ID: db.next("content"), ContentType: client.ContentVisualAid, ContentData: fmt.Sprintf("Diagram outline for %s.", l.Title)},
	}
	l.AIGeneratedStatus = client.AIStatusCompleted
	return "AI content generation started", nil
}

// UploadMaterial attaches a file to an owned lecture and returns its URL.
func (db *DB) UploadMaterial(ctx context.Context, lectureID int64, fileName string, content io.Reader) (string, error) {
	if err := begin(ctx); err != nil {
		return "", err
	}
	if err := requireID(lectureID, "lectureId"); err != nil {
		return "", err
	}
	if fileName == "" || content == nil {
		return "", invalid("material file is required")
	}
	path := lecturePath(lectureID) + "/materials"
	u, err := db.authorize(path, client.RoleTeacher)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(io.Discard, content); err != nil {
		return "", badRequest(path, "read upload: %v", err)
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	rec, err := db.ownedLecture(path, lectureID, u)
	if err != nil {
		return "", err
	}
	m := client.LectureMaterial{
		ID:           db.next("material"),
		DisplayName:  fileName,
		MaterialType: client.MaterialFile,
		URL:          fmt.Sprintf("/files/lectures/%d/%s", lectureID, url.PathEscape(fileName)),
	}
	rec.materials = append(rec.materials, m)
	return m.URL, nil
}

// Materials lists the files attached to a lecture in upload order.
func (db *DB) Materials(lectureID int64) []client.LectureMaterial {
	db.mu.RLock()
	defer db.mu.RUnlock()
	rec, ok := db.lectures[lectureID]
	if !ok {
		return nil
	}
	return append([]client.LectureMaterial(nil), rec.materials...)
}

// ownedLecture returns the lecture when u teaches its course. Callers hold
// the lock.
func (db *DB) ownedLecture(path string, lectureID int64, u client.User) (*lectureRecord, error) {
	rec, ok := db.lectures[lectureID]
	if !ok {
		return nil, notFound(path, "lecture")
	}
	if _, err := db.ownedCourse(path, rec.courseID, u); err != nil {
		return nil, err
	}
	return rec, nil
}
