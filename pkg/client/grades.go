package client

import (
	"context"
	"fmt"

	"github.com/aulaschool/aula/pkg/domain"
)

// GradeFilter narrows ListGrades. Zero fields are not sent.
type GradeFilter struct {
	SchoolID  int64
	CourseID  int64
	StudentID int64
	Period    string
}

// ListGrades returns grades matching the filter.
func (c *Client) ListGrades(ctx context.Context, f GradeFilter) ([]domain.Grade, error) {
	q := Params{
		"schoolId":  f.SchoolID,
		"courseId":  f.CourseID,
		"studentId": f.StudentID,
		"period":    f.Period,
	}
	var grades []domain.Grade
	if err := c.get(ctx, "api/grades", q, &grades); err != nil {
		return nil, fmt.Errorf("client.ListGrades: %w", err)
	}
	return grades, nil
}

// CreateGrade records a grade.
func (c *Client) CreateGrade(ctx context.Context, g domain.Grade) (*domain.Grade, error) {
	var created domain.Grade
	if err := c.post(ctx, "api/grades", g, &created); err != nil {
		return nil, fmt.Errorf("client.CreateGrade: %w", err)
	}
	return &created, nil
}

// UpdateGrade updates a grade.
func (c *Client) UpdateGrade(ctx context.Context, g domain.Grade) (*domain.Grade, error) {
	var updated domain.Grade
	if err := c.put(ctx, fmt.Sprintf("api/grades/%d", g.ID), g, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateGrade: %w", err)
	}
	return &updated, nil
}

// DeleteGrade deletes a grade.
func (c *Client) DeleteGrade(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("api/grades/%d", id)); err != nil {
		return fmt.Errorf("client.DeleteGrade: %w", err)
	}
	return nil
}

// GetStudentAverage returns the server-computed average of a student in a
// course, or nil when the server has none yet (204 or a null average).
func (c *Client) GetStudentAverage(ctx context.Context, studentID, courseID int64) (*float64, error) {
	var resp struct {
		Average *float64 `json:"average"`
	}
	q := Params{"studentId": studentID, "courseId": courseID}
	if err := c.get(ctx, "api/grades/average", q, &resp); err != nil {
		return nil, fmt.Errorf("client.GetStudentAverage: %w", err)
	}
	return resp.Average, nil
}
