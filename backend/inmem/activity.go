package inmem

import (
	"context"
	"fmt"
	"strings"

	"github.com/dlrkawo/aitutor-lms/client"
)

// SubmitInquiry answers from the lecture's generated summary when there is
// one, otherwise from its description.
func (db *DB) SubmitInquiry(ctx context.Context, lectureID int64, req client.InquiryRequest) (*client.InquiryResponse, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	if err := requireID(lectureID, "lectureId"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.InquiryText) == "" {
		return nil, invalid("inquiry: inquiryText is required")
	}
	path := lecturePath(lectureID) + "/inquiries"
	if _, err := db.authenticate(path); err != nil {
		return nil, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	rec, ok := db.lectures[lectureID]
	if !ok {
		return nil, notFound(path, "lecture")
	}
	basis := rec.lecture.Description
	for _, c := range rec.lecture.Contents {
		if c.ContentType == client.ContentSummary {
			basis = c.ContentData
			break
		}
	}
	if basis == "" {
		basis = "This lecture covers " + rec.lecture.Title + "."
	}
	return &client.InquiryResponse{
		AnswerText: fmt.Sprintf("You asked: %q. %s", req.InquiryText, basis),
	}, nil
}

// GenerateSelfDiagnosisQuiz returns one true/false, one multiple choice and
// one essay question about the lecture.
func (db *DB) GenerateSelfDiagnosisQuiz(ctx context.Context, lectureID int64) ([]client.QuizQuestion, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	if err := requireID(lectureID, "lectureId"); err != nil {
		return nil, err
	}
	path := lecturePath(lectureID) + "/self-diagnosis-quiz"
	if _, err := db.authenticate(path); err != nil {
		return nil, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	rec, ok := db.lectures[lectureID]
	if !ok {
		return nil, notFound(path, "lecture")
	}
	l := rec.lecture
	return []client.QuizQuestion{
		{QuestionText: fmt.Sprintf("True or false: %s is covered in week %d.", l.Title, l.WeekNumber), QuestionType: string(client.QuestionOX)},
		{QuestionText: fmt.Sprintf("Which statement best summarizes %q?", l.Title), QuestionType: string(client.QuestionMultiChoice)},
		{QuestionText: fmt.Sprintf("Explain the key idea of %q in your own words.", l.Title), QuestionType: string(client.QuestionEssay)},
	}, nil
}
