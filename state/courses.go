package state

import (
	"context"
	"slices"

	"github.com/dlrkawo/aitutor-lms/backend"
	"github.com/dlrkawo/aitutor-lms/client"
)

// Courses holds the course list and the course last opened.
type Courses struct {
	view
	svc backend.Courses

	courses []client.Course
	current *client.CourseDetail
}

// NewCourses creates a Courses view.
func NewCourses(ctx context.Context, svc backend.Courses) *Courses {
	c := &Courses{svc: svc}
	c.init(ctx)
	return c
}

// Courses returns a copy of the list.
func (c *Courses) Courses() []client.Course {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.courses)
}

// Current returns the course last fetched with Get.
func (c *Courses) Current() *client.CourseDetail {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Fetch replaces the list with the backend's.
func (c *Courses) Fetch() Result[[]client.Course] {
	return run(&c.view, "list courses", c.svc.ListCourses, func(list []client.Course) {
		c.courses = list
	})
}

// Get loads one course with its lectures.
func (c *Courses) Get(courseID int64) Result[*client.CourseDetail] {
	return run(&c.view, "get course", func(ctx context.Context) (*client.CourseDetail, error) {
		return c.svc.GetCourse(ctx, courseID)
	}, func(d *client.CourseDetail) {
		c.current = d
	})
}

// Create adds a course and appends it to the list.
func (c *Courses) Create(req client.CourseRequest) Result[*client.CourseDetail] {
	return run(&c.view, "create course", func(ctx context.Context) (*client.CourseDetail, error) {
		return c.svc.CreateCourse(ctx, req)
	}, func(d *client.CourseDetail) {
		c.courses = append(c.courses, d.Course)
	})
}

// Update edits a course and replaces it in the list.
func (c *Courses) Update(courseID int64, req client.CourseRequest) Result[*client.CourseDetail] {
	return run(&c.view, "update course", func(ctx context.Context) (*client.CourseDetail, error) {
		return c.svc.UpdateCourse(ctx, courseID, req)
	}, func(d *client.CourseDetail) {
		for i := range c.courses {
			if c.courses[i].ID == courseID {
				c.courses[i] = d.Course
			}
		}
		if c.current != nil && c.current.ID == courseID {
			c.current = d
		}
	})
}

// Delete removes a course and drops it from the list.
func (c *Courses) Delete(courseID int64) Result[struct{}] {
	return run(&c.view, "delete course", done(func(ctx context.Context) error {
		return c.svc.DeleteCourse(ctx, courseID)
	}), func(struct{}) {
		c.courses = slices.DeleteFunc(c.courses, func(x client.Course) bool { return x.ID == courseID })
		if c.current != nil && c.current.ID == courseID {
			c.current = nil
		}
	})
}

// Enroll signs the current student up for a course.
func (c *Courses) Enroll(courseID int64) Result[string] {
	return run(&c.view, "enroll course", func(ctx context.Context) (string, error) {
		return c.svc.EnrollCourse(ctx, courseID)
	}, nil)
}
