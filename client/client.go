package client

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/dlrkawo/aitutor-lms/client/internal/api"
	lmserrors "github.com/dlrkawo/aitutor-lms/client/internal/errors"
	"github.com/dlrkawo/aitutor-lms/client/internal/job"
	"github.com/dlrkawo/aitutor-lms/client/internal/shardqueue"
	"github.com/dlrkawo/aitutor-lms/client/tokenstore"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the AI Tutor LMS REST backend. The base address and mode
// are fixed at construction; the bearer token is read from the token store
// on every authenticated call.
type Client struct {
	baseURL string
	mode    Mode
	http    *http.Client
	tokens  tokenstore.Store

	uploadCfg *UploadQueueConfig
	exec      executor

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for baseURL. Additional options can be provided
// via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, lmserrors.NewValidationError("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		mode:    ModeDirect,
		http:    &http.Client{},
		tokens:  tokenstore.NewMemory(),
	}

	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.exec == nil {
		cfg, err := uploadConfig(c.uploadCfg)
		if err != nil {
			return nil, err
		}
		c.exec = shardqueue.NewShardExecutor(cfg)
	}

	c.http.Transport = &metricsTransport{base: c.http.Transport}
	return c, nil
}

func uploadConfig(explicit *UploadQueueConfig) (shardqueue.Config, error) {
	var cfg shardqueue.Config
	if explicit != nil {
		cfg = *explicit
	} else {
		loaded, err := shardqueue.LoadConfig()
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	next := cfg.ErrorHandler
	cfg.ErrorHandler = func(err error) {
		recordFailure(err)
		log.Warn().Err(err).Msg("material upload failed")
		if next != nil {
			next(err)
		}
	}
	return cfg, nil
}

// BaseURL returns the resolved base address.
func (c *Client) BaseURL() string { return c.baseURL }

// Mode returns the deployment mode the base address was resolved with.
func (c *Client) Mode() Mode { return c.mode }

// Tokens returns the token store the client reads the bearer token from.
func (c *Client) Tokens() tokenstore.Store { return c.tokens }

// Close stops the upload executor after draining queued uploads. Safe to
// call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	return nil
}

func (c *Client) endpoint() api.Endpoint {
	return api.Endpoint{HTTP: c.http, BaseURL: c.baseURL, Mode: c.mode, Tokens: c.tokens}
}

// --------------------------------------------------------------------
// Auth operations
// --------------------------------------------------------------------

// Signup registers a new account and returns the backend's message.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (string, error) {
	return observe(api.Signup(ctx, c.endpoint(), &req))
}

// Login exchanges credentials for tokens and stores the access token, so
// subsequent authenticated calls carry it. An answer without an access token
// fails and leaves the stored token untouched.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	tr, err := observe(api.Login(ctx, c.endpoint(), &req))
	if err != nil {
		return nil, err
	}
	if tr.AccessToken == "" {
		return nil, lmserrors.NewValidationError("login response carries no access token")
	}
	if err := c.tokens.SetToken(tr.AccessToken); err != nil {
		return nil, err
	}
	return tr, nil
}

// Logout clears the stored token. It makes no network call.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// Me returns the account behind the stored token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	return observe(api.Me(ctx, c.endpoint()))
}

// IsAuthenticated reports whether a token is stored. It does not check the
// token with the backend.
func (c *Client) IsAuthenticated() bool {
	tok, err := c.tokens.Token()
	return err == nil && tok != ""
}

// --------------------------------------------------------------------
// Course operations
// --------------------------------------------------------------------

// CreateCourse creates a course owned by the calling teacher.
func (c *Client) CreateCourse(ctx context.Context, req CourseRequest) (*CourseDetail, error) {
	return observe(api.CreateCourse(ctx, c.endpoint(), &req))
}

// ListCourses lists the courses visible to the caller.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	return observe(api.ListCourses(ctx, c.endpoint()))
}

// GetCourse returns a course with its lectures.
func (c *Client) GetCourse(ctx context.Context, courseID int64) (*CourseDetail, error) {
	return observe(api.GetCourse(ctx, c.endpoint(), courseID))
}

// UpdateCourse replaces a course's title and description.
func (c *Client) UpdateCourse(ctx context.Context, courseID int64, req CourseRequest) (*CourseDetail, error) {
	return observe(api.UpdateCourse(ctx, c.endpoint(), courseID, &req))
}

// DeleteCourse deletes a course. The backend answers 204.
func (c *Client) DeleteCourse(ctx context.Context, courseID int64) error {
	return observeErr(api.DeleteCourse(ctx, c.endpoint(), courseID))
}

// EnrollCourse enrolls the calling student and returns the backend's message.
func (c *Client) EnrollCourse(ctx context.Context, courseID int64) (string, error) {
	return observe(api.EnrollCourse(ctx, c.endpoint(), courseID))
}

// --------------------------------------------------------------------
// Lecture operations
// --------------------------------------------------------------------

// CreateLecture adds a lecture to a course.
func (c *Client) CreateLecture(ctx context.Context, courseID int64, req CreateLectureRequest) (*Lecture, error) {
	return observe(api.CreateLecture(ctx, c.endpoint(), courseID, &req))
}

// GetLecture returns a lecture with its generated contents.
func (c *Client) GetLecture(ctx context.Context, lectureID int64) (*Lecture, error) {
	return observe(api.GetLecture(ctx, c.endpoint(), lectureID))
}

// UpdateLecture patches the non-nil fields of req.
func (c *Client) UpdateLecture(ctx context.Context, lectureID int64, req UpdateLectureRequest) (*Lecture, error) {
	return observe(api.UpdateLecture(ctx, c.endpoint(), lectureID, &req))
}

// DeleteLecture deletes a lecture.
func (c *Client) DeleteLecture(ctx context.Context, lectureID int64) error {
	return observeErr(api.DeleteLecture(ctx, c.endpoint(), lectureID))
}

// GenerateLectureContent asks the backend to start AI content generation.
func (c *Client) GenerateLectureContent(ctx context.Context, lectureID int64) (string, error) {
	return observe(api.GenerateLectureContent(ctx, c.endpoint(), lectureID))
}

// UploadMaterial uploads one file as multipart field "file" and waits for
// the backend's answer.
func (c *Client) UploadMaterial(ctx context.Context, lectureID int64, fileName string, content io.Reader) (string, error) {
	return observe(api.UploadMaterial(ctx, c.endpoint(), lectureID, fileName, content))
}

// --------------------------------------------------------------------
// Learning activity operations
// --------------------------------------------------------------------

// SubmitInquiry asks the AI tutor a question about a lecture.
func (c *Client) SubmitInquiry(ctx context.Context, lectureID int64, req InquiryRequest) (*InquiryResponse, error) {
	return observe(api.SubmitInquiry(ctx, c.endpoint(), lectureID, &req))
}

// GenerateSelfDiagnosisQuiz returns generated practice questions for a lecture.
func (c *Client) GenerateSelfDiagnosisQuiz(ctx context.Context, lectureID int64) ([]QuizQuestion, error) {
	return observe(api.GenerateSelfDiagnosisQuiz(ctx, c.endpoint(), lectureID))
}

// --------------------------------------------------------------------
// Assessment operations
// --------------------------------------------------------------------

// ListAssessments lists a course's assessments.
func (c *Client) ListAssessments(ctx context.Context, courseID int64) ([]AssessmentSimple, error) {
	return observe(api.ListAssessments(ctx, c.endpoint(), courseID))
}

// CreateAssessment creates an assessment and returns the backend's message.
func (c *Client) CreateAssessment(ctx context.Context, courseID int64, req CreateAssessmentRequest) (string, error) {
	return observe(api.CreateAssessment(ctx, c.endpoint(), courseID, &req))
}

// GetAssessment returns an assessment with its questions.
func (c *Client) GetAssessment(ctx context.Context, assessmentID int64) (*AssessmentDetail, error) {
	return observe(api.GetAssessment(ctx, c.endpoint(), assessmentID))
}

// ListSubmissions lists the submissions for an assessment.
func (c *Client) ListSubmissions(ctx context.Context, assessmentID int64) ([]Submission, error) {
	return observe(api.ListSubmissions(ctx, c.endpoint(), assessmentID))
}

// CreateSubmission submits answers and returns the backend's message.
func (c *Client) CreateSubmission(ctx context.Context, assessmentID int64, req SubmissionRequest) (string, error) {
	return observe(api.CreateSubmission(ctx, c.endpoint(), assessmentID, &req))
}

// GetSubmission returns a submission with its answers.
func (c *Client) GetSubmission(ctx context.Context, submissionID int64) (*SubmissionResult, error) {
	return observe(api.GetSubmission(ctx, c.endpoint(), submissionID))
}

// --------------------------------------------------------------------
// Async material uploads
// --------------------------------------------------------------------

// EnqueueMaterialUpload queues an upload on the per-lecture executor and
// returns once it is accepted. Uploads for the same lecture run in order.
// Failures are counted and reported to the upload queue's ErrorHandler.
func (c *Client) EnqueueMaterialUpload(ctx context.Context, lectureID int64, fileName string, content []byte) (*EnqueueAck, error) {
	if atomic.LoadUint32(&c.closedOnce) == 1 {
		return nil, ErrClosed
	}
	ack, err := api.EnqueueUpload(ctx, c.exec, c.endpoint(), lectureID, fileName, content)
	if err != nil {
		return nil, err
	}
	uploadsEnqueuedTotal.WithLabelValues(job.ShardLabel(lectureID)).Inc()
	return ack, nil
}

// AwaitUploads blocks until every upload queued for lectureID before the
// call has finished.
func (c *Client) AwaitUploads(ctx context.Context, lectureID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.exec.Barrier(ctx, api.ShardKey(lectureID))
}
