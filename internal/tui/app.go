package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aulaschool/aula/internal/browser"
	"github.com/aulaschool/aula/pkg/client"
	"github.com/aulaschool/aula/pkg/domain"
)

type view int

const (
	viewDashboard view = iota
	viewChat
)

// meLoadedMsg carries the signed-in user.
type meLoadedMsg struct {
	me  *domain.User
	err error
}

// Options configures NewApp.
type Options struct {
	SchoolID     int64
	PollInterval time.Duration // chat polling; defaults to 5s
}

// App is the root Bubbletea model.
type App struct {
	client     *client.Client
	view       view
	dashboard  dashboardModel
	chat       chatModel
	helpOpen   bool
	helpCursor int
	me         *domain.User
	meErr      string
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(c *client.Client, opts Options) App {
	return App{
		client:    c,
		dashboard: newDashboardModel(c, opts.SchoolID),
		chat:      newChatModel(c, opts.PollInterval),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.dashboard.Init(), shimmerTickCmd(), a.loadMe())
}

func (a App) loadMe() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		me, err := c.Me(context.Background())
		return meLoadedMsg{me: me, err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.chat, _ = a.chat.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case meLoadedMsg:
		if msg.err != nil {
			a.meErr = client.Message(msg.err)
		} else if msg.me != nil {
			a.me = msg.me
		}
		a.chat, _ = a.chat.Update(msg)
		if a.view == viewChat {
			return a, a.chat.Init()
		}
		return a, nil

	// Results are routed by type so a load that finishes after the user
	// switched tabs still lands in its model.
	case dashboardLoadedMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.Update(msg)
		return a, cmd

	case chatConversationsLoadedMsg, chatMessagesLoadedMsg, chatPollTickMsg, chatSentMsg, copyResultMsg, cursorBlinkMsg:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				browser.Open(helpItems[a.helpCursor].url) //nolint:errcheck // best-effort browser open
			}
			return a, nil
		}

		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "h":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q":
				return a, tea.Quit
			case "1":
				if a.view != viewDashboard {
					a.view = viewDashboard
					return a, a.dashboard.Init()
				}
				return a, nil
			case "2":
				if a.view != viewChat {
					a.view = viewChat
					return a, a.chat.Init()
				}
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewChat:
		a.chat, cmd = a.chat.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	return a.view == viewChat && a.chat.state == chatConvoState && a.chat.inputFocused
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	header := center(logo, a.width) + "\n"
	if a.me != nil {
		who := RoleStyle(a.me.RoleID).Render(a.me.FullName())
		if a.me.RoleName != "" {
			who += metaStyle.Render(" · " + strings.ToLower(a.me.RoleName))
		}
		header += center(who, a.width)
	} else if a.meErr != "" {
		header += center(errorStyle.Render("not signed in: "+a.meErr), a.width)
	}

	// Tab bar: 1 Dashboard  2 Chat
	tabs := []struct {
		key  string
		name string
		v    view
	}{
		{"1", "Dashboard", viewDashboard},
		{"2", "Chat", viewChat},
	}
	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		if t.v == viewChat {
			if n := a.chat.unread(); n > 0 {
				label += " " + unreadDotStyle.Render(fmt.Sprintf("●%d", n))
			}
		}
		tabBar.WriteString(padCenter(label, colWidth))
	}

	var body, help string
	switch a.view {
	case viewDashboard:
		body = a.dashboard.View()
		help = " " + helpEntry("1-2", "tabs") + "  " + a.dashboard.helpKeys()
	case viewChat:
		body = a.chat.View()
		help = " " + helpEntry("1-2", "tabs") + "  " + a.chat.helpKeys()
	}

	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = helpBar("j/k", "nav", "enter", "open", "esc", "close")
	}

	// Chrome budget: header(2) + tabs(1) + help(1) = 4 lines + body
	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar.String(), body, help)
}

// center left-pads s so it sits in the middle of width columns.
func center(s string, width int) string {
	pad := max((width-lipgloss.Width(s))/2, 0)
	return strings.Repeat(" ", pad) + s
}

// padCenter centers s within a column of exactly width cells when it fits.
func padCenter(s string, width int) string {
	w := lipgloss.Width(s)
	left := max((width-w)/2, 0)
	right := max(width-w-left, 0)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
