package main

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aulaschool/aula/internal/logger"
	"github.com/aulaschool/aula/internal/tui"
	"github.com/aulaschool/aula/pkg/client"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the school overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schoolID, err := a.school()
			if err != nil {
				return err
			}
			stats, err := a.client.DashboardStats(cmd.Context(), schoolID)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(stats)
			}
			a.printer.Header("School overview")
			a.printer.KeyValue("Users", stats.Users)
			a.printer.KeyValue("Teachers", stats.Teachers)
			a.printer.KeyValue("Students", stats.Students)
			a.printer.KeyValue("Courses", stats.Courses)
			a.printer.KeyValue("Classrooms", stats.Classrooms)
			a.printer.KeyValue("Pending payments", stats.PendingPayments)
			a.printer.KeyValue("Revenue (month)", formatAmount(stats.Revenue, ""))
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>...",
		Short: "Search users, courses and classrooms",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schoolID, err := a.school()
			if err != nil {
				return err
			}
			term := strings.Join(args, " ")
			res, err := a.client.GlobalSearch(cmd.Context(), schoolID, term)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printer.JSON(res)
			}
			if res.Empty() {
				a.printer.Info("Nothing matches %q.", strings.TrimSpace(term))
				return nil
			}

			if len(res.Users) > 0 {
				a.printer.Header("Users")
				table := a.printer.NewTable("ID", "Name", "Email")
				for _, u := range res.Users {
					table.AddRow(strconv.FormatInt(u.ID, 10), u.FullName(), u.Email)
				}
				if err := table.Render(); err != nil {
					return err
				}
			}
			if len(res.Courses) > 0 {
				a.printer.Header("Courses")
				if err := renderCourses(a, res.Courses); err != nil {
					return err
				}
			}
			if len(res.Classrooms) > 0 {
				a.printer.Header("Classrooms")
				table := a.printer.NewTable("ID", "Name", "Building")
				for _, r := range res.Classrooms {
					table.AddRow(strconv.FormatInt(r.ID, 10), r.Name, orDash(r.Building))
				}
				if err := table.Render(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "chat",
		Aliases: []string{"tui"},
		Short:   "Open the terminal dashboard and school chat",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}

			// Request logs would draw over the alternate screen.
			c := client.New(a.cfg.API.BaseURL, a.session,
				client.WithLogger(logger.Discard()),
				client.WithRoles(a.cfg.Roles.RoleSet()),
			)
			model := tui.NewApp(c, tui.Options{
				SchoolID:     a.cfg.API.SchoolID,
				PollInterval: a.cfg.Chat.PollInterval,
			})
			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return err
			}
			return nil
		},
	}
}
