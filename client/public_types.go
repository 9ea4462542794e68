package client

import (
	"github.com/dlrkawo/aitutor-lms/client/internal/api"
	"github.com/dlrkawo/aitutor-lms/client/internal/shardqueue"
	"github.com/dlrkawo/aitutor-lms/client/internal/types"
)

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	SignupRequest           = types.SignupRequest
	LoginRequest            = types.LoginRequest
	CourseRequest           = types.CourseRequest
	CreateLectureRequest    = types.CreateLectureRequest
	UpdateLectureRequest    = types.UpdateLectureRequest
	InquiryRequest          = types.InquiryRequest
	ChoiceOptionRequest     = types.ChoiceOptionRequest
	QuestionRequest         = types.QuestionRequest
	CreateAssessmentRequest = types.CreateAssessmentRequest
	AnswerRequest           = types.AnswerRequest
	SubmissionRequest       = types.SubmissionRequest

	// Domain entities
	Role             = types.Role
	User             = types.User
	Course           = types.Course
	CourseDetail     = types.CourseDetail
	AIStatus         = types.AIStatus
	Lecture          = types.Lecture
	ContentType      = types.ContentType
	LectureContent   = types.LectureContent
	MaterialType     = types.MaterialType
	LectureMaterial  = types.LectureMaterial
	QuizQuestion     = types.QuizQuestion
	AssessmentType   = types.AssessmentType
	QuestionType     = types.QuestionType
	AssessmentSimple = types.AssessmentSimple
	AssessmentDetail = types.AssessmentDetail
	Question         = types.Question
	ChoiceOption     = types.Option
	SubmissionStatus = types.SubmissionStatus
	Submission       = types.Submission

	// Responses
	TokenResponse    = types.TokenResponse
	InquiryResponse  = types.InquiryResponse
	AnswerResult     = types.AnswerResult
	SubmissionResult = types.SubmissionResult
	EnqueueAck       = types.EnqueueAck

	// UploadQueueConfig tunes the async material upload queue.
	UploadQueueConfig = shardqueue.Config

	// Mode records how the base address was resolved.
	Mode = api.Mode
)

const (
	ModeProxy  = api.ModeProxy
	ModeDirect = api.ModeDirect
)

const (
	RoleStudent = types.RoleStudent
	RoleTeacher = types.RoleTeacher

	AIStatusPending    = types.AIStatusPending
	AIStatusProcessing = types.AIStatusProcessing
	AIStatusCompleted  = types.AIStatusCompleted
	AIStatusFailed     = types.AIStatusFailed

	ContentScript    = types.ContentScript
	ContentSummary   = types.ContentSummary
	ContentVisualAid = types.ContentVisualAid

	MaterialFile = types.MaterialFile
	MaterialLink = types.MaterialLink

	AssessmentQuiz       = types.AssessmentQuiz
	AssessmentAssignment = types.AssessmentAssignment

	QuestionFlashcard   = types.QuestionFlashcard
	QuestionOX          = types.QuestionOX
	QuestionMultiChoice = types.QuestionMultiChoice
	QuestionEssay       = types.QuestionEssay

	SubmissionSubmitted = types.SubmissionSubmitted
	SubmissionGraded    = types.SubmissionGraded
)
