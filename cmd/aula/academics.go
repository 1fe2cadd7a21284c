package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aulaschool/aula/internal/output"
	"github.com/aulaschool/aula/pkg/client"
	"github.com/aulaschool/aula/pkg/domain"
)

// attendanceFlags are shared by attendance list and summary.
type attendanceFlags struct {
	course  int64
	student int64
	from    string
	to      string
}

func (f *attendanceFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.course, "course", 0, "course ID")
	cmd.Flags().Int64Var(&f.student, "student", 0, "student ID")
	cmd.Flags().StringVar(&f.from, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "last date, YYYY-MM-DD")
}

func (f *attendanceFlags) filter(schoolID int64) (client.AttendanceFilter, error) {
	from, err := parseDate("from", f.from)
	if err != nil {
		return client.AttendanceFilter{}, err
	}
	to, err := parseDate("to", f.to)
	if err != nil {
		return client.AttendanceFilter{}, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return client.AttendanceFilter{}, &output.CLIError{Summary: "--to is before --from"}
	}
	return client.AttendanceFilter{
		SchoolID:  schoolID,
		CourseID:  f.course,
		StudentID: f.student,
		From:      from,
		To:        to,
	}, nil
}

func newAttendanceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Review attendance records",
	}

	var listFlags attendanceFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List attendance records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schoolID, err := a.school()
			if err != nil {
				return err
			}
			f, err := listFlags.filter(schoolID)
			if err != nil {
				return err
			}
			records, err := a.client.ListAttendance(cmd.Context(), f)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(records)
			}
			if len(records) == 0 {
				a.printer.Info("No attendance records found.")
				return nil
			}
			table := a.printer.NewTable("Date", "Course", "Student", "Status", "Note")
			for _, r := range records {
				student := r.StudentName
				if student == "" {
					student = strconv.FormatInt(r.StudentID, 10)
				}
				table.AddRow(
					formatDate(r.Date),
					strconv.FormatInt(r.CourseID, 10),
					student,
					a.printer.StatusBadge(string(r.Status)),
					orDash(r.Note),
				)
			}
			return table.Render()
		},
	}
	listFlags.register(list)

	var summaryFlags attendanceFlags
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Count attendance per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schoolID, err := a.school()
			if err != nil {
				return err
			}
			f, err := summaryFlags.filter(schoolID)
			if err != nil {
				return err
			}
			s, err := a.client.AttendanceSummary(cmd.Context(), f)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(s)
			}
			a.printer.KeyValue("Records", s.Total)
			a.printer.KeyValue("Present", s.Present)
			a.printer.KeyValue("Late", s.Late)
			a.printer.KeyValue("Absent", s.Absent)
			a.printer.KeyValue("Excused", s.Excused)
			a.printer.KeyValue("Attendance rate", fmt.Sprintf("%.1f%%", s.Rate*100))
			return nil
		},
	}
	summaryFlags.register(summary)

	cmd.AddCommand(list, summary)
	return cmd
}

func newGradesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grades",
		Short: "Review grades and averages",
	}

	var f client.GradeFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List grades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schoolID, err := a.school()
			if err != nil {
				return err
			}
			f.SchoolID = schoolID
			grades, err := a.client.ListGrades(cmd.Context(), f)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(grades)
			}
			if len(grades) == 0 {
				a.printer.Info("No grades found.")
				return nil
			}
			return renderGrades(a, grades)
		},
	}
	list.Flags().Int64Var(&f.CourseID, "course", 0, "course ID")
	list.Flags().Int64Var(&f.StudentID, "student", 0, "student ID")
	list.Flags().StringVar(&f.Period, "period", "", "grading period")

	var studentID, courseID int64
	average := &cobra.Command{
		Use:   "average",
		Short: "Show a student's grades and average in a course",
		Long: `Show a student's grades and average in a course. The average comes from
the server; when it has none, the weighted mean of the listed grades is shown
instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			report, err := a.client.StudentReport(cmd.Context(), studentID, courseID)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(report)
			}
			if len(report.Grades) > 0 {
				if err := renderGrades(a, report.Grades); err != nil {
					return err
				}
			}
			if report.Average == nil {
				if avg, ok := domain.AverageScore(report.Grades); ok {
					a.printer.KeyValue("Average", domain.FormatAverage(&avg)+" "+a.printer.Dim("(computed locally)"))
					return nil
				}
			}
			a.printer.KeyValue("Average", domain.FormatAverage(report.Average))
			return nil
		},
	}
	average.Flags().Int64Var(&studentID, "student", 0, "student ID")
	average.Flags().Int64Var(&courseID, "course", 0, "course ID")
	_ = average.MarkFlagRequired("student")
	_ = average.MarkFlagRequired("course")

	cmd.AddCommand(list, average)
	return cmd
}

func renderGrades(a *app, grades []domain.Grade) error {
	table := a.printer.NewTable("Student", "Course", "Period", "Score", "Weight")
	for _, g := range grades {
		student := g.StudentName
		if student == "" {
			student = strconv.FormatInt(g.StudentID, 10)
		}
		weight := "-"
		if g.Weight > 0 {
			weight = strconv.FormatFloat(g.Weight, 'g', -1, 64)
		}
		table.AddRow(
			student,
			strconv.FormatInt(g.CourseID, 10),
			orDash(g.Period),
			strconv.FormatFloat(g.Score, 'f', 1, 64),
			weight,
		)
	}
	return table.Render()
}

func newExamsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exams",
		Aliases: []string{"evaluations"},
		Short:   "Manage virtual exams",
	}

	var courseID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List virtual exams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schoolID, err := a.school()
			if err != nil {
				return err
			}
			exams, err := a.client.ListEvaluations(cmd.Context(), schoolID, courseID)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(exams)
			}
			if len(exams) == 0 {
				a.printer.Info("No exams found.")
				return nil
			}
			table := a.printer.NewTable("ID", "Title", "Course", "Status", "Closes")
			for _, e := range exams {
				closes := "-"
				if e.ClosesAt != nil {
					closes = formatDate(*e.ClosesAt)
				}
				table.AddRow(
					strconv.FormatInt(e.ID, 10),
					e.Title,
					strconv.FormatInt(e.CourseID, 10),
					a.printer.StatusBadge(string(e.Status)),
					closes,
				)
			}
			return table.Render()
		},
	}
	list.Flags().Int64Var(&courseID, "course", 0, "only exams of this course")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an exam and its questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("exam", args[0])
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}
			e, err := a.client.GetEvaluation(cmd.Context(), id)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(e)
			}
			a.printer.Header(e.Title)
			a.printer.KeyValue("Status", a.printer.StatusBadge(string(e.Status)))
			a.printer.KeyValue("Course", e.CourseID)
			a.printer.KeyValue("Max score", e.MaxScore)
			if e.Description != "" {
				a.printer.KeyValue("Description", e.Description)
			}
			if len(e.Questions) == 0 {
				a.printer.Info("No questions yet.")
				return nil
			}
			table := a.printer.NewTable("#", "Kind", "Prompt", "Points")
			for i, q := range e.Questions {
				table.AddRow(
					strconv.Itoa(i+1),
					q.Kind,
					q.Prompt,
					strconv.FormatFloat(q.Points, 'g', -1, 64),
				)
			}
			return table.Render()
		},
	}

	publish := &cobra.Command{
		Use:   "publish <id>",
		Short: "Publish an exam to students",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("exam", args[0])
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}
			if err := a.client.PublishEvaluation(cmd.Context(), id); err != nil {
				return err
			}
			a.printer.Success("Published exam %d.", id)
			return nil
		},
	}

	cmd.AddCommand(list, show, publish)
	return cmd
}
