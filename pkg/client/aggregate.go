package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aulaschool/aula/pkg/domain"
)

// DashboardStats fetches users, courses, classrooms and this month's payments
// concurrently and combines them once all have returned. The first failure
// cancels the rest and is returned.
func (c *Client) DashboardStats(ctx context.Context, schoolID int64) (*domain.DashboardStats, error) {
	var (
		users      []domain.User
		courses    []domain.Course
		classrooms []domain.Classroom
		payments   *domain.Page[domain.Payment]
	)
	now := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = c.ListUsers(gctx, schoolID)
		return err
	})
	g.Go(func() (err error) {
		courses, err = c.ListCourses(gctx, schoolID)
		return err
	})
	g.Go(func() (err error) {
		classrooms, err = c.ListClassrooms(gctx, schoolID)
		return err
	})
	g.Go(func() (err error) {
		payments, err = c.ListPayments(gctx, PaymentFilter{SchoolID: schoolID, Year: now.Year(), Month: int(now.Month())})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("client.DashboardStats: %w", err)
	}

	stats := &domain.DashboardStats{
		Users:      len(users),
		Teachers:   len(c.roles.Teachers(users)),
		Students:   len(c.roles.Students(users)),
		Courses:    len(courses),
		Classrooms: len(classrooms),
		Revenue:    domain.SumPayments(payments.Items, domain.PaymentPaid),
	}
	for _, p := range payments.Items {
		if p.Status == domain.PaymentPending || p.Status == domain.PaymentOverdue {
			stats.PendingPayments++
		}
	}
	return stats, nil
}

// GlobalSearch looks for term across users, courses and classrooms. The three
// lists are fetched concurrently and matched locally, case-insensitively.
func (c *Client) GlobalSearch(ctx context.Context, schoolID int64, term string) (*domain.SearchResults, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	res := &domain.SearchResults{}
	if term == "" {
		return res, nil
	}

	var (
		users      []domain.User
		courses    []domain.Course
		classrooms []domain.Classroom
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = c.ListUsers(gctx, schoolID)
		return err
	})
	g.Go(func() (err error) {
		courses, err = c.ListCourses(gctx, schoolID)
		return err
	})
	g.Go(func() (err error) {
		classrooms, err = c.ListClassrooms(gctx, schoolID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("client.GlobalSearch: %w", err)
	}

	for _, u := range users {
		if matches(term, u.FirstName, u.LastName, u.Email, u.Document) {
			res.Users = append(res.Users, u)
		}
	}
	for _, co := range courses {
		if matches(term, co.Name, co.Code, co.Grade, co.TeacherName) {
			res.Courses = append(res.Courses, co)
		}
	}
	for _, r := range classrooms {
		if matches(term, r.Name, r.Building) {
			res.Classrooms = append(res.Classrooms, r)
		}
	}
	return res, nil
}

func matches(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// StudentReport fetches a student's grades and server average in parallel.
// A failed average is tolerated and left nil; a failed grade list is not.
func (c *Client) StudentReport(ctx context.Context, studentID, courseID int64) (*domain.StudentReport, error) {
	report := &domain.StudentReport{StudentID: studentID, CourseID: courseID}

	var g errgroup.Group
	g.Go(func() (err error) {
		report.Grades, err = c.ListGrades(ctx, GradeFilter{StudentID: studentID, CourseID: courseID})
		return err
	})
	g.Go(func() error {
		avg, err := c.GetStudentAverage(ctx, studentID, courseID)
		if err != nil {
			c.logger.Debug("average unavailable", "student_id", studentID, "course_id", courseID, "error", err)
			return nil
		}
		report.Average = avg
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("client.StudentReport: %w", err)
	}
	return report, nil
}
