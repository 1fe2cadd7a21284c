package domain

import "time"

// EvaluationStatus is the lifecycle state of a virtual exam.
type EvaluationStatus string

const (
	EvaluationDraft     EvaluationStatus = "draft"
	EvaluationPublished EvaluationStatus = "published"
	EvaluationClosed    EvaluationStatus = "closed"
)

// Evaluation is a virtual exam authored by a teacher for a course.
type Evaluation struct {
	ID          int64            `json:"id"`
	SchoolID    int64            `json:"schoolId"`
	CourseID    int64            `json:"courseId"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Status      EvaluationStatus `json:"status"`
	OpensAt     *time.Time       `json:"opensAt,omitempty"`
	ClosesAt    *time.Time       `json:"closesAt,omitempty"`
	MaxScore    float64          `json:"maxScore"`
	Questions   []Question       `json:"questions,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// Question kinds.
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionOpen           = "open"
)

// Question belongs to an Evaluation.
type Question struct {
	ID            int64    `json:"id,omitempty"`
	EvaluationID  int64    `json:"evaluationId,omitempty"`
	Kind          string   `json:"kind"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options,omitempty"`
	CorrectOption *int     `json:"correctOption,omitempty"`
	Points        float64  `json:"points"`
}

// Answer is a student's response to one question.
type Answer struct {
	QuestionID  int64  `json:"questionId"`
	OptionIndex *int   `json:"optionIndex,omitempty"`
	Text        string `json:"text,omitempty"`
}

// Submission is a student's attempt at an evaluation.
type Submission struct {
	ID           int64      `json:"id,omitempty"`
	EvaluationID int64      `json:"evaluationId"`
	StudentID    int64      `json:"studentId"`
	StudentName  string     `json:"studentName,omitempty"`
	Answers      []Answer   `json:"answers"`
	Score        *float64   `json:"score,omitempty"`
	Feedback     string     `json:"feedback,omitempty"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
}

// Content is course material published by a teacher.
type Content struct {
	ID          int64        `json:"id"`
	CourseID    int64        `json:"courseId"`
	Title       string       `json:"title"`
	Body        string       `json:"body,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Attachment is a file referenced by a content item.
type Attachment struct {
	ID       int64  `json:"id,omitempty"`
	FileName string `json:"fileName"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType,omitempty"`
}
