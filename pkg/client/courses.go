package client

import (
	"context"
	"fmt"

	"github.com/aulaschool/aula/pkg/domain"
)

// CourseRequest is the payload for creating or updating a course.
type CourseRequest struct {
	SchoolID    int64  `json:"schoolId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code,omitempty"`
	Grade       string `json:"grade" validate:"required"`
	Section     string `json:"section,omitempty"`
	TeacherID   int64  `json:"teacherId,omitempty"`
	ClassroomID int64  `json:"classroomId,omitempty"`
	Schedule    string `json:"schedule,omitempty"`
	Year        int    `json:"year,omitempty"`
}

// ListCourses returns every course of a school.
func (c *Client) ListCourses(ctx context.Context, schoolID int64) ([]domain.Course, error) {
	var courses []domain.Course
	if err := c.get(ctx, "api/courses", Params{"schoolId": schoolID}, &courses); err != nil {
		return nil, fmt.Errorf("client.ListCourses: %w", err)
	}
	return courses, nil
}

// GetCourseByID fetches a single course scoped to a school.
func (c *Client) GetCourseByID(ctx context.Context, id, schoolID int64) (*domain.Course, error) {
	var course domain.Course
	if err := c.get(ctx, fmt.Sprintf("api/courses/%d", id), Params{"schoolId": schoolID}, &course); err != nil {
		return nil, fmt.Errorf("client.GetCourseByID: %w", err)
	}
	return &course, nil
}

// CourseSchedule fetches a course and decodes its schedule string.
func (c *Client) CourseSchedule(ctx context.Context, id, schoolID int64) ([]domain.ScheduleBlock, error) {
	course, err := c.GetCourseByID(ctx, id, schoolID)
	if err != nil {
		return nil, fmt.Errorf("client.CourseSchedule: %w", err)
	}
	blocks, err := domain.ParseSchedule(course.Schedule)
	if err != nil {
		return nil, fmt.Errorf("client.CourseSchedule: %w", err)
	}
	return blocks, nil
}

// CreateCourse creates a course.
func (c *Client) CreateCourse(ctx context.Context, req CourseRequest) (*domain.Course, error) {
	var created domain.Course
	if err := c.post(ctx, "api/courses", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateCourse: %w", err)
	}
	return &created, nil
}

// UpdateCourse updates a course.
func (c *Client) UpdateCourse(ctx context.Context, id int64, req CourseRequest) (*domain.Course, error) {
	var updated domain.Course
	if err := c.put(ctx, fmt.Sprintf("api/courses/%d", id), req, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateCourse: %w", err)
	}
	return &updated, nil
}

// DeleteCourse deletes a course.
func (c *Client) DeleteCourse(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("api/courses/%d", id)); err != nil {
		return fmt.Errorf("client.DeleteCourse: %w", err)
	}
	return nil
}

// ListCourseStudents returns the students enrolled in a course.
func (c *Client) ListCourseStudents(ctx context.Context, courseID int64) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, fmt.Sprintf("api/courses/%d/students", courseID), nil, &users); err != nil {
		return nil, fmt.Errorf("client.ListCourseStudents: %w", err)
	}
	return users, nil
}

// --- Classrooms ---

// ListClassrooms returns every classroom of a school.
func (c *Client) ListClassrooms(ctx context.Context, schoolID int64) ([]domain.Classroom, error) {
	var rooms []domain.Classroom
	if err := c.get(ctx, "api/classrooms", Params{"schoolId": schoolID}, &rooms); err != nil {
		return nil, fmt.Errorf("client.ListClassrooms: %w", err)
	}
	return rooms, nil
}

// GetClassroom fetches a classroom by ID.
func (c *Client) GetClassroom(ctx context.Context, id int64) (*domain.Classroom, error) {
	var room domain.Classroom
	if err := c.get(ctx, fmt.Sprintf("api/classrooms/%d", id), nil, &room); err != nil {
		return nil, fmt.Errorf("client.GetClassroom: %w", err)
	}
	return &room, nil
}

// CreateClassroom creates a classroom.
func (c *Client) CreateClassroom(ctx context.Context, room domain.Classroom) (*domain.Classroom, error) {
	var created domain.Classroom
	if err := c.post(ctx, "api/classrooms", room, &created); err != nil {
		return nil, fmt.Errorf("client.CreateClassroom: %w", err)
	}
	return &created, nil
}

// UpdateClassroom updates a classroom.
func (c *Client) UpdateClassroom(ctx context.Context, room domain.Classroom) (*domain.Classroom, error) {
	var updated domain.Classroom
	if err := c.put(ctx, fmt.Sprintf("api/classrooms/%d", room.ID), room, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateClassroom: %w", err)
	}
	return &updated, nil
}

// DeleteClassroom deletes a classroom.
func (c *Client) DeleteClassroom(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("api/classrooms/%d", id)); err != nil {
		return fmt.Errorf("client.DeleteClassroom: %w", err)
	}
	return nil
}
