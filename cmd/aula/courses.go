package main

import (
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aulaschool/aula/pkg/domain"
)

func newCoursesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Browse courses and their schedules",
	}
	cmd.AddCommand(newCoursesListCmd(a), newCoursesGetCmd(a), newCoursesScheduleCmd(a))
	return cmd
}

func newCoursesListCmd(a *app) *cobra.Command {
	var byGrade bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the courses of the school",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schoolID, err := a.school()
			if err != nil {
				return err
			}
			courses, err := a.client.ListCourses(cmd.Context(), schoolID)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(courses)
			}
			if len(courses) == 0 {
				a.printer.Info("No courses found.")
				return nil
			}
			if !byGrade {
				return renderCourses(a, courses)
			}

			groups := domain.GroupCoursesByGrade(courses)
			grades := make([]string, 0, len(groups))
			for g := range groups {
				grades = append(grades, g)
			}
			slices.Sort(grades)
			for _, g := range grades {
				a.printer.Header("Grade " + orDash(g))
				if err := renderCourses(a, groups[g]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&byGrade, "by-grade", false, "group courses by grade level")
	return cmd
}

func renderCourses(a *app, courses []domain.Course) error {
	table := a.printer.NewTable("ID", "Name", "Grade", "Section", "Teacher")
	for _, c := range courses {
		table.AddRow(
			strconv.FormatInt(c.ID, 10),
			c.Name,
			orDash(c.Grade),
			orDash(c.Section),
			orDash(c.TeacherName),
		)
	}
	return table.Render()
}

func newCoursesGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("course", args[0])
			if err != nil {
				return err
			}
			schoolID, err := a.school()
			if err != nil {
				return err
			}
			c, err := a.client.GetCourseByID(cmd.Context(), id, schoolID)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(c)
			}
			a.printer.Header(c.Name)
			a.printer.KeyValue("ID", c.ID)
			a.printer.KeyValue("Code", orDash(c.Code))
			a.printer.KeyValue("Grade", orDash(c.Grade))
			a.printer.KeyValue("Section", orDash(c.Section))
			a.printer.KeyValue("Teacher", orDash(c.TeacherName))
			a.printer.KeyValue("Schedule", orDash(c.Schedule))
			if c.Year != 0 {
				a.printer.KeyValue("Year", c.Year)
			}
			return nil
		},
	}
}

func newCoursesScheduleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <id>",
		Short: "Show the weekly schedule of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("course", args[0])
			if err != nil {
				return err
			}
			schoolID, err := a.school()
			if err != nil {
				return err
			}
			blocks, err := a.client.CourseSchedule(cmd.Context(), id, schoolID)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(blocks)
			}
			if len(blocks) == 0 {
				a.printer.Info("Course %d has no schedule.", id)
				return nil
			}
			table := a.printer.NewTable("Day", "Start", "End", "Length")
			for _, b := range blocks {
				table.AddRow(b.Day, b.Start, b.End, b.Duration().String())
			}
			return table.Render()
		},
	}
}

func newClassroomsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classrooms",
		Short: "Browse classrooms",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the classrooms of the school",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schoolID, err := a.school()
			if err != nil {
				return err
			}
			rooms, err := a.client.ListClassrooms(cmd.Context(), schoolID)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(rooms)
			}
			if len(rooms) == 0 {
				a.printer.Info("No classrooms found.")
				return nil
			}
			table := a.printer.NewTable("ID", "Name", "Building", "Capacity", "Active")
			for _, r := range rooms {
				table.AddRow(
					strconv.FormatInt(r.ID, 10),
					r.Name,
					orDash(r.Building),
					strconv.Itoa(r.Capacity),
					strconv.FormatBool(r.Active),
				)
			}
			return table.Render()
		},
	})
	return cmd
}
