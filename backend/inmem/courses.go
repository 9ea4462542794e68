package inmem

import (
	"context"
	"sort"
	"strings"

	"github.com/dlrkawo/aitutor-lms/client"
)

const coursesPath = "/api/courses"

// ListCourses returns every course ordered by id.
func (db *DB) ListCourses(ctx context.Context) ([]client.Course, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	if _, err := db.authenticate(coursesPath); err != nil {
		return nil, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]client.Course, 0, len(db.courses))
	for _, rec := range db.courses {
		out = append(out, rec.course)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetCourse returns a course with its lectures ordered by week.
func (db *DB) GetCourse(ctx context.Context, courseID int64) (*client.CourseDetail, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	if err := requireID(courseID, "courseId"); err != nil {
		return nil, err
	}
	path := coursePath(courseID)
	if _, err := db.authenticate(path); err != nil {
		return nil, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	rec, ok := db.courses[courseID]
	if !ok {
		return nil, notFound(path, "course")
	}
	return db.courseDetail(rec), nil
}

// CreateCourse creates a course owned by the calling teacher.
func (db *DB) CreateCourse(ctx context.Context, req client.CourseRequest) (*client.CourseDetail, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	u, err := db.authorize(coursesPath, client.RoleTeacher)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalid("course: title is required")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	id := db.next("course")
	rec := &courseRecord{
		course:    client.Course{ID: id, Title: req.Title, TeacherName: u.FullName, Description: req.Description},
		teacherID: u.ID,
		students:  make(map[int64]bool),
	}
	db.courses[id] = rec
	return db.courseDetail(rec), nil
}

// UpdateCourse replaces the title and description of an owned course.
func (db *DB) UpdateCourse(ctx context.Context, courseID int64, req client.CourseRequest) (*client.CourseDetail, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	if err := requireID(courseID, "courseId"); err != nil {
		return nil, err
	}
	path := coursePath(courseID)
	u, err := db.authorize(path, client.RoleTeacher)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalid("course: title is required")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	rec, err := db.ownedCourse(path, courseID, u)
	if err != nil {
		return nil, err
	}
	rec.course.Title = req.Title
	rec.course.Description = req.Description
	return db.courseDetail(rec), nil
}

// DeleteCourse removes an owned course with its lectures, assessments and
// submissions.
func (db *DB) DeleteCourse(ctx context.Context, courseID int64) error {
	if err := begin(ctx); err != nil {
		return err
	}
	if err := requireID(courseID, "courseId"); err != nil {
		return err
	}
	path := coursePath(courseID)
	u, err := db.authorize(path, client.RoleTeacher)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, err := db.ownedCourse(path, courseID, u); err != nil {
		return err
	}
	for id, l := range db.lectures {
		if l.courseID == courseID {
			delete(db.lectures, id)
		}
	}
	for id, a := range db.assessments {
		if a.courseID == courseID {
			db.deleteSubmissionsOf(id)
			delete(db.assessments, id)
		}
	}
	delete(db.courses, courseID)
	return nil
}

// EnrollCourse enrolls the calling student.
func (db *DB) EnrollCourse(ctx context.Context, courseID int64) (string, error) {
	if err := begin(ctx); err != nil {
		return "", err
	}
	if err := requireID(courseID, "courseId"); err != nil {
		return "", err
	}
	path := coursePath(courseID) + "/enroll"
	u, err := db.authorize(path, client.RoleStudent)
	if err != nil {
		return "", err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	rec, ok := db.courses[courseID]
	if !ok {
		return "", notFound(path, "course")
	}
	if rec.students[u.ID] {
		return "", conflict(path, "already enrolled")
	}
	rec.students[u.ID] = true
	return "enrollment successful", nil
}

// ownedCourse returns the course when u teaches it. Callers hold the lock.
func (db *DB) ownedCourse(path string, courseID int64, u client.User) (*courseRecord, error) {
	rec, ok := db.courses[courseID]
	if !ok {
		return nil, notFound(path, "course")
	}
	if rec.teacherID != u.ID {
		return nil, forbidden(path, "not the course owner")
	}
	return rec, nil
}

// courseDetail copies a course with its lectures. Callers hold the lock.
func (db *DB) courseDetail(rec *courseRecord) *client.CourseDetail {
	detail := &client.CourseDetail{Course: rec.course}
	for _, l := range db.lectures {
		if l.courseID == rec.course.ID {
			detail.Lectures = append(detail.Lectures, copyLecture(l.lecture))
		}
	}
	sort.Slice(detail.Lectures, func(i, j int) bool {
		a, b := detail.Lectures[i], detail.Lectures[j]
		if a.WeekNumber != b.WeekNumber {
			return a.WeekNumber < b.WeekNumber
		}
		return a.ID < b.ID
	})
	return detail
}

func copyLecture(l client.Lecture) client.Lecture {
	if l.Contents != nil {
		l.Contents = append([]client.LectureContent(nil), l.Contents...)
	}
	return l
}
