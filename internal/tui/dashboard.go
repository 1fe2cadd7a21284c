package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aulaschool/aula/pkg/client"
	"github.com/aulaschool/aula/pkg/domain"
)

type dashboardLoadedMsg struct {
	stats *domain.DashboardStats
	err   error
	at    time.Time
}

type dashboardModel struct {
	client   *client.Client
	schoolID int64
	stats    *domain.DashboardStats
	loading  bool
	loaded   bool
	err      string
	loadedAt time.Time
	width    int
	height   int
}

func newDashboardModel(c *client.Client, schoolID int64) dashboardModel {
	return dashboardModel{client: c, schoolID: schoolID}
}

// Init loads the stats the first time the screen is shown; later visits
// keep what is on screen until the user presses r.
func (m dashboardModel) Init() tea.Cmd {
	if m.loaded {
		return nil
	}
	return m.load()
}

func (m dashboardModel) load() tea.Cmd {
	c := m.client
	schoolID := m.schoolID
	return func() tea.Msg {
		stats, err := c.DashboardStats(context.Background(), schoolID)
		return dashboardLoadedMsg{stats: stats, err: err, at: time.Now()}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case dashboardLoadedMsg:
		m.loading = false
		m.loaded = true
		m.loadedAt = msg.at
		if msg.err != nil {
			m.err = client.Message(msg.err)
		} else {
			m.stats = msg.stats
			m.err = ""
		}

	case tea.KeyMsg:
		if msg.String() == "r" && !m.loading {
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.stats == nil {
		switch {
		case m.loading:
			return " " + dimStyle.Render("loading dashboard...")
		case m.err != "":
			return " " + errorStyle.Render("error: "+m.err) + "\n " + dimStyle.Render("press r to retry")
		default:
			return " " + dimStyle.Render("loading dashboard...")
		}
	}

	var b strings.Builder
	s := m.stats

	b.WriteString(" " + titleStyle.Render("School overview") + "\n")
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", max(m.width-2, 4))) + "\n\n")

	pending := statValueStyle.Render(fmt.Sprintf("%d", s.PendingPayments))
	if s.PendingPayments > 0 {
		pending = warnStyle.Bold(true).Render(fmt.Sprintf("%d", s.PendingPayments))
	}

	rows := []struct {
		bar   lipgloss.Style
		label string
		value string
		note  string
	}{
		{RoleStyle(domain.RoleAdmin), "Users", statValueStyle.Render(fmt.Sprintf("%d", s.Users)), ""},
		{RoleStyle(domain.RoleTeacher), "Teachers", statValueStyle.Render(fmt.Sprintf("%d", s.Teachers)), ""},
		{RoleStyle(domain.RoleStudent), "Students", statValueStyle.Render(fmt.Sprintf("%d", s.Students)), ""},
		{normalStyle, "Courses", statValueStyle.Render(fmt.Sprintf("%d", s.Courses)), ""},
		{normalStyle, "Classrooms", statValueStyle.Render(fmt.Sprintf("%d", s.Classrooms)), ""},
		{moneyStyle, "Revenue", moneyStyle.Render(formatMoney(s.Revenue)), "paid this month"},
		{warnStyle, "Pending payments", pending, "pending or overdue"},
	}
	for _, r := range rows {
		line := fmt.Sprintf(" %s  %s %s", r.bar.Render("│"), dimStyle.Render(fmt.Sprintf("%-18s", r.label)), r.value)
		if r.note != "" {
			line += "  " + metaStyle.Render(r.note)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	status := "updated " + formatTime(m.loadedAt)
	if m.loading {
		status = "refreshing..."
	}
	b.WriteString(" " + metaStyle.Render(status) + "\n")
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render("refresh failed: "+m.err) + "\n")
	}
	return b.String()
}

func (m dashboardModel) helpKeys() string {
	return helpEntry("r", "reload") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
}
