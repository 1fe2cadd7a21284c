package client

import (
	"context"
	"fmt"

	"github.com/aulaschool/aula/pkg/domain"
)

// EvaluationRequest is the payload for creating or updating an evaluation.
type EvaluationRequest struct {
	SchoolID    int64   `json:"schoolId" validate:"required"`
	CourseID    int64   `json:"courseId" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description,omitempty"`
	MaxScore    float64 `json:"maxScore" validate:"gt=0"`
	OpensAt     string  `json:"opensAt,omitempty"`
	ClosesAt    string  `json:"closesAt,omitempty"`
}

// ListEvaluations returns the evaluations of a school, optionally for one course.
func (c *Client) ListEvaluations(ctx context.Context, schoolID, courseID int64) ([]domain.Evaluation, error) {
	var evals []domain.Evaluation
	q := Params{"schoolId": schoolID, "courseId": courseID}
	if err := c.get(ctx, "api/evaluations", q, &evals); err != nil {
		return nil, fmt.Errorf("client.ListEvaluations: %w", err)
	}
	return evals, nil
}

// GetEvaluation fetches an evaluation with its questions.
func (c *Client) GetEvaluation(ctx context.Context, id int64) (*domain.Evaluation, error) {
	var e domain.Evaluation
	if err := c.get(ctx, fmt.Sprintf("api/evaluations/%d", id), nil, &e); err != nil {
		return nil, fmt.Errorf("client.GetEvaluation: %w", err)
	}
	return &e, nil
}

// CreateEvaluation creates a draft evaluation without questions.
func (c *Client) CreateEvaluation(ctx context.Context, req EvaluationRequest) (*domain.Evaluation, error) {
	var created domain.Evaluation
	if err := c.post(ctx, "api/evaluations", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateEvaluation: %w", err)
	}
	return &created, nil
}

// UpdateEvaluation updates an evaluation's header fields.
func (c *Client) UpdateEvaluation(ctx context.Context, id int64, req EvaluationRequest) (*domain.Evaluation, error) {
	var updated domain.Evaluation
	if err := c.put(ctx, fmt.Sprintf("api/evaluations/%d", id), req, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateEvaluation: %w", err)
	}
	return &updated, nil
}

// DeleteEvaluation deletes an evaluation.
func (c *Client) DeleteEvaluation(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("api/evaluations/%d", id)); err != nil {
		return fmt.Errorf("client.DeleteEvaluation: %w", err)
	}
	return nil
}

// AddQuestions appends questions to an evaluation and returns them with IDs.
func (c *Client) AddQuestions(ctx context.Context, evaluationID int64, questions []domain.Question) ([]domain.Question, error) {
	var saved []domain.Question
	if err := c.post(ctx, fmt.Sprintf("api/evaluations/%d/questions", evaluationID), questions, &saved); err != nil {
		return nil, fmt.Errorf("client.AddQuestions: %w", err)
	}
	return saved, nil
}

// CreateEvaluationWithQuestions creates the evaluation, then adds its
// questions. The calls run in sequence; if adding questions fails the created
// draft is returned along with the error.
func (c *Client) CreateEvaluationWithQuestions(ctx context.Context, req EvaluationRequest, questions []domain.Question) (*domain.Evaluation, error) {
	eval, err := c.CreateEvaluation(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("client.CreateEvaluationWithQuestions: %w", err)
	}
	if len(questions) == 0 {
		return eval, nil
	}
	saved, err := c.AddQuestions(ctx, eval.ID, questions)
	if err != nil {
		return eval, fmt.Errorf("client.CreateEvaluationWithQuestions: %w", err)
	}
	eval.Questions = saved
	return eval, nil
}

// PublishEvaluation makes a draft visible to students.
func (c *Client) PublishEvaluation(ctx context.Context, id int64) error {
	if err := c.post(ctx, fmt.Sprintf("api/evaluations/%d/publish", id), nil, nil); err != nil {
		return fmt.Errorf("client.PublishEvaluation: %w", err)
	}
	return nil
}

// SubmitEvaluation sends a student's answers.
func (c *Client) SubmitEvaluation(ctx context.Context, evaluationID int64, sub domain.Submission) (*domain.Submission, error) {
	var saved domain.Submission
	if err := c.post(ctx, fmt.Sprintf("api/evaluations/%d/submissions", evaluationID), sub, &saved); err != nil {
		return nil, fmt.Errorf("client.SubmitEvaluation: %w", err)
	}
	return &saved, nil
}

// ListSubmissions returns all submissions of an evaluation.
func (c *Client) ListSubmissions(ctx context.Context, evaluationID int64) ([]domain.Submission, error) {
	var subs []domain.Submission
	if err := c.get(ctx, fmt.Sprintf("api/evaluations/%d/submissions", evaluationID), nil, &subs); err != nil {
		return nil, fmt.Errorf("client.ListSubmissions: %w", err)
	}
	return subs, nil
}

// GradeSubmission sets the score and feedback of a submission.
func (c *Client) GradeSubmission(ctx context.Context, submissionID int64, score float64, feedback string) (*domain.Submission, error) {
	var graded domain.Submission
	body := map[string]any{"score": score, "feedback": feedback}
	if err := c.put(ctx, fmt.Sprintf("api/submissions/%d/grade", submissionID), body, &graded); err != nil {
		return nil, fmt.Errorf("client.GradeSubmission: %w", err)
	}
	return &graded, nil
}

// --- Contents ---

// ContentDraft is the payload for creating course material.
type ContentDraft struct {
	CourseID int64  `json:"courseId" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body,omitempty"`
}

// ListContents returns the material of a course.
func (c *Client) ListContents(ctx context.Context, courseID int64) ([]domain.Content, error) {
	var contents []domain.Content
	if err := c.get(ctx, "api/contents", Params{"courseId": courseID}, &contents); err != nil {
		return nil, fmt.Errorf("client.ListContents: %w", err)
	}
	return contents, nil
}

// CreateContent creates a content item without attachments.
func (c *Client) CreateContent(ctx context.Context, draft ContentDraft) (*domain.Content, error) {
	var created domain.Content
	if err := c.post(ctx, "api/contents", draft, &created); err != nil {
		return nil, fmt.Errorf("client.CreateContent: %w", err)
	}
	return &created, nil
}

// AddContentAttachment attaches one file reference to a content item.
func (c *Client) AddContentAttachment(ctx context.Context, contentID int64, a domain.Attachment) (*domain.Attachment, error) {
	var saved domain.Attachment
	if err := c.post(ctx, fmt.Sprintf("api/contents/%d/attachments", contentID), a, &saved); err != nil {
		return nil, fmt.Errorf("client.AddContentAttachment: %w", err)
	}
	return &saved, nil
}

// PublishContent creates the content, then uploads each attachment in order.
// It stops at the first failed upload and returns the content with the
// attachments saved so far.
func (c *Client) PublishContent(ctx context.Context, draft ContentDraft, attachments []domain.Attachment) (*domain.Content, error) {
	content, err := c.CreateContent(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("client.PublishContent: %w", err)
	}
	for _, a := range attachments {
		saved, err := c.AddContentAttachment(ctx, content.ID, a)
		if err != nil {
			return content, fmt.Errorf("client.PublishContent: %s: %w", a.FileName, err)
		}
		content.Attachments = append(content.Attachments, *saved)
	}
	return content, nil
}
