// Package backend defines one interface per LMS resource and selects the
// implementation (real HTTP or in-memory fake) by configuration.
package backend

import (
	"context"
	"io"

	"github.com/dlrkawo/aitutor-lms/client"
	"github.com/dlrkawo/aitutor-lms/client/tokenstore"
)

// Auth covers account operations. Login persists the access token and
// Logout clears it.
type Auth interface {
	Signup(ctx context.Context, req client.SignupRequest) (string, error)
	Login(ctx context.Context, req client.LoginRequest) (*client.TokenResponse, error)
	Logout() error
	Me(ctx context.Context) (*client.User, error)
	IsAuthenticated() bool
}

// Courses covers course CRUD and enrollment.
type Courses interface {
	ListCourses(ctx context.Context) ([]client.Course, error)
	GetCourse(ctx context.Context, courseID int64) (*client.CourseDetail, error)
	CreateCourse(ctx context.Context, req client.CourseRequest) (*client.CourseDetail, error)
	UpdateCourse(ctx context.Context, courseID int64, req client.CourseRequest) (*client.CourseDetail, error)
	DeleteCourse(ctx context.Context, courseID int64) error
	EnrollCourse(ctx context.Context, courseID int64) (string, error)
}

// Lectures covers lecture CRUD, AI content generation and material upload.
type Lectures interface {
	CreateLecture(ctx context.Context, courseID int64, req client.CreateLectureRequest) (*client.Lecture, error)
	GetLecture(ctx context.Context, lectureID int64) (*client.Lecture, error)
	UpdateLecture(ctx context.Context, lectureID int64, req client.UpdateLectureRequest) (*client.Lecture, error)
	DeleteLecture(ctx context.Context, lectureID int64) error
	GenerateLectureContent(ctx context.Context, lectureID int64) (string, error)
	UploadMaterial(ctx context.Context, lectureID int64, fileName string, content io.Reader) (string, error)
}

// UploadQueue is implemented by backends that run material uploads on a
// per-lecture executor.
type UploadQueue interface {
	EnqueueMaterialUpload(ctx context.Context, lectureID int64, fileName string, content []byte) (*client.EnqueueAck, error)
	AwaitUploads(ctx context.Context, lectureID int64) error
}

// Activity covers student learning interactions.
type Activity interface {
	SubmitInquiry(ctx context.Context, lectureID int64, req client.InquiryRequest) (*client.InquiryResponse, error)
	GenerateSelfDiagnosisQuiz(ctx context.Context, lectureID int64) ([]client.QuizQuestion, error)
}

// Assessments covers assessments and submissions.
type Assessments interface {
	ListAssessments(ctx context.Context, courseID int64) ([]client.AssessmentSimple, error)
	CreateAssessment(ctx context.Context, courseID int64, req client.CreateAssessmentRequest) (string, error)
	GetAssessment(ctx context.Context, assessmentID int64) (*client.AssessmentDetail, error)
	ListSubmissions(ctx context.Context, assessmentID int64) ([]client.Submission, error)
	CreateSubmission(ctx context.Context, assessmentID int64, req client.SubmissionRequest) (string, error)
	GetSubmission(ctx context.Context, submissionID int64) (*client.SubmissionResult, error)
}

// Service is implemented by both backends.
type Service interface {
	Auth
	Courses
	Lectures
	Activity
	Assessments
}

// Backend bundles the resource interfaces with the token store they share.
type Backend struct {
	Auth        Auth
	Courses     Courses
	Lectures    Lectures
	Activity    Activity
	Assessments Assessments

	// Tokens is the store Login writes to; views subscribe to it.
	Tokens tokenstore.Store
	// Name is the configured implementation, "http" or "memory".
	Name string

	closers []io.Closer
}

// FromService exposes every resource of svc.
func FromService(name string, svc Service, tokens tokenstore.Store, closers ...io.Closer) *Backend {
	return &Backend{
		Auth:        svc,
		Courses:     svc,
		Lectures:    svc,
		Activity:    svc,
		Assessments: svc,
		Tokens:      tokens,
		Name:        name,
		closers:     closers,
	}
}

// Close releases the client and token store in reverse order of opening.
func (b *Backend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	b.closers = nil
	return first
}
