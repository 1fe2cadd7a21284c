package client

import (
	"context"
	"fmt"
	"time"

	"github.com/aulaschool/aula/pkg/domain"
)

// AttendanceFilter narrows ListAttendance. Zero fields are not sent.
type AttendanceFilter struct {
	SchoolID  int64
	CourseID  int64
	StudentID int64
	From      time.Time
	To        time.Time
}

func (f AttendanceFilter) params() Params {
	return Params{
		"schoolId":  f.SchoolID,
		"courseId":  f.CourseID,
		"studentId": f.StudentID,
		"from":      f.From,
		"to":        f.To,
	}
}

// ListAttendance returns attendance records matching the filter.
func (c *Client) ListAttendance(ctx context.Context, f AttendanceFilter) ([]domain.AttendanceRecord, error) {
	var records []domain.AttendanceRecord
	if err := c.get(ctx, "api/attendance", f.params(), &records); err != nil {
		return nil, fmt.Errorf("client.ListAttendance: %w", err)
	}
	return records, nil
}

// RecordAttendance stores a whole session's attendance in one call.
func (c *Client) RecordAttendance(ctx context.Context, records []domain.AttendanceRecord) ([]domain.AttendanceRecord, error) {
	var saved []domain.AttendanceRecord
	if err := c.post(ctx, "api/attendance/bulk", records, &saved); err != nil {
		return nil, fmt.Errorf("client.RecordAttendance: %w", err)
	}
	return saved, nil
}

// UpdateAttendance changes the status or note of one record.
func (c *Client) UpdateAttendance(ctx context.Context, r domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	var updated domain.AttendanceRecord
	if err := c.put(ctx, fmt.Sprintf("api/attendance/%d", r.ID), r, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateAttendance: %w", err)
	}
	return &updated, nil
}

// AttendanceSummary lists records matching the filter and tallies them.
func (c *Client) AttendanceSummary(ctx context.Context, f AttendanceFilter) (domain.AttendanceSummary, error) {
	records, err := c.ListAttendance(ctx, f)
	if err != nil {
		return domain.AttendanceSummary{}, fmt.Errorf("client.AttendanceSummary: %w", err)
	}
	return domain.SummarizeAttendance(records), nil
}
