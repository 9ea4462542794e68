package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dlrkawo/aitutor-lms/client/internal/types"
)

// CreateCourse creates a course (teachers only).
func CreateCourse(ctx context.Context, ep Endpoint, req *types.CourseRequest) (*types.CourseDetail, error) {
	if err := types.ValidateBody("course", req); err != nil {
		return nil, err
	}
	c, err := call[types.CourseDetail](ctx, ep, Request{Method: http.MethodPost, Path: "/api/courses", Body: req, IncludeAuth: true}, "create course")
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCourses returns every course.
func ListCourses(ctx context.Context, ep Endpoint) ([]types.Course, error) {
	return call[[]types.Course](ctx, ep, Request{Method: http.MethodGet, Path: "/api/courses", IncludeAuth: true}, "list courses")
}

// GetCourse returns a course with its lectures.
func GetCourse(ctx context.Context, ep Endpoint, courseID int64) (*types.CourseDetail, error) {
	if err := types.ValidateID(courseID, "courseId"); err != nil {
		return nil, err
	}
	c, err := call[types.CourseDetail](ctx, ep, Request{Method: http.MethodGet, Path: coursePath(courseID), IncludeAuth: true}, "get course")
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCourse replaces a course's title and description (teachers only).
func UpdateCourse(ctx context.Context, ep Endpoint, courseID int64, req *types.CourseRequest) (*types.CourseDetail, error) {
	if err := types.ValidateID(courseID, "courseId"); err != nil {
		return nil, err
	}
	if err := types.ValidateBody("course", req); err != nil {
		return nil, err
	}
	c, err := call[types.CourseDetail](ctx, ep, Request{Method: http.MethodPut, Path: coursePath(courseID), Body: req, IncludeAuth: true}, "update course")
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCourse removes a course (teachers only).
func DeleteCourse(ctx context.Context, ep Endpoint, courseID int64) error {
	if err := types.ValidateID(courseID, "courseId"); err != nil {
		return err
	}
	return exec(ctx, ep, Request{Method: http.MethodDelete, Path: coursePath(courseID), IncludeAuth: true})
}

// EnrollCourse enrolls the current student. The backend answers with text.
func EnrollCourse(ctx context.Context, ep Endpoint, courseID int64) (string, error) {
	if err := types.ValidateID(courseID, "courseId"); err != nil {
		return "", err
	}
	return call[string](ctx, ep, Request{Method: http.MethodPost, Path: coursePath(courseID) + "/enroll", IncludeAuth: true}, "enroll course")
}

func coursePath(courseID int64) string {
	return fmt.Sprintf("/api/courses/%d", courseID)
}
