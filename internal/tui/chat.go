package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/aulaschool/aula/pkg/client"
	"github.com/aulaschool/aula/pkg/domain"
)

// chatState distinguishes between list and conversation views.
type chatState int

const (
	chatListState  chatState = iota
	chatConvoState           // viewing a single conversation
)

// defaultPollInterval is used when the caller does not configure one.
const defaultPollInterval = 5 * time.Second

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// -- messages --

type chatConversationsLoadedMsg struct {
	conversations []domain.Conversation
	err           error
}

// chatMessagesLoadedMsg carries one poll result. seq identifies the poll
// loop that asked for it; results from a closed loop are dropped.
type chatMessagesLoadedMsg struct {
	conversationID int64
	seq            int
	messages       []domain.ChatMessage
	err            error
}

type chatSentMsg struct {
	clientID uuid.UUID
	err      error
}

type chatPollTickMsg struct {
	conversationID int64
	seq            int
}

type copyResultMsg struct {
	err error
}

// cursorBlinkMsg toggles the input cursor on/off.
type cursorBlinkMsg struct{}

func cursorBlinkCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return cursorBlinkMsg{}
	})
}

func chatPollCmd(interval time.Duration, conversationID int64, seq int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return chatPollTickMsg{conversationID: conversationID, seq: seq}
	})
}

// pendingMessage is a message sent from this terminal that has not yet come
// back from the server.
type pendingMessage struct {
	clientID uuid.UUID
	body     string
	failed   bool
}

// -- model --

type chatModel struct {
	client       *client.Client
	pollInterval time.Duration
	state        chatState
	myID         int64

	conversations []domain.Conversation
	cursor        int
	loading       bool
	loaded        bool
	err           string
	width         int
	height        int

	// convo state
	openID       int64
	openTitle    string
	messages     []domain.ChatMessage
	pending      []pendingMessage
	since        time.Time // newest CreatedAt seen, the inclusive poll cursor
	seq          int       // poll generation, bumped on open and close
	input        string
	inputFocused bool
	cursorOn     bool
	status       string
}

func newChatModel(c *client.Client, pollInterval time.Duration) chatModel {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return chatModel{client: c, pollInterval: pollInterval}
}

// Init loads the conversation list once the signed-in user is known.
func (m chatModel) Init() tea.Cmd {
	if m.myID == 0 || m.loaded || m.state == chatConvoState {
		return nil
	}
	return m.loadConversations()
}

func (m chatModel) loadConversations() tea.Cmd {
	c := m.client
	userID := m.myID
	return func() tea.Msg {
		convs, err := c.ListConversations(context.Background(), userID)
		return chatConversationsLoadedMsg{conversations: convs, err: err}
	}
}

func (m chatModel) loadMessages() tea.Cmd {
	c := m.client
	id, seq, since := m.openID, m.seq, m.since
	return func() tea.Msg {
		msgs, err := c.GetMessages(context.Background(), id, since)
		return chatMessagesLoadedMsg{conversationID: id, seq: seq, messages: msgs, err: err}
	}
}

func (m chatModel) sendMessage(clientID uuid.UUID, body string) tea.Cmd {
	c := m.client
	id := m.openID
	return func() tea.Msg {
		_, err := c.SendMessageWithID(context.Background(), id, clientID, body)
		return chatSentMsg{clientID: clientID, err: err}
	}
}

func (m chatModel) markRead() tea.Cmd {
	c := m.client
	id := m.openID
	return func() tea.Msg {
		// Best effort: a stale unread badge is harmless.
		_ = c.MarkConversationRead(context.Background(), id) //nolint:errcheck
		return nil
	}
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case meLoadedMsg:
		switch {
		case msg.err != nil:
			m.loaded = true
			m.err = client.Message(msg.err)
		case msg.me != nil:
			m.myID = msg.me.ID
		}

	case chatConversationsLoadedMsg:
		m.loading = false
		m.loaded = true
		if msg.err != nil {
			m.err = client.Message(msg.err)
		} else {
			m.conversations = msg.conversations
			m.err = ""
			if m.cursor >= len(m.conversations) {
				m.cursor = max(len(m.conversations)-1, 0)
			}
		}

	case chatMessagesLoadedMsg:
		if m.state != chatConvoState || msg.conversationID != m.openID || msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.status = "error loading messages: " + client.Message(msg.err)
		} else {
			m.merge(msg.messages)
			if strings.HasPrefix(m.status, "error loading messages") {
				m.status = ""
			}
		}
		return m, chatPollCmd(m.pollInterval, m.openID, m.seq)

	case chatPollTickMsg:
		if m.state == chatConvoState && msg.conversationID == m.openID && msg.seq == m.seq {
			return m, m.loadMessages()
		}

	case chatSentMsg:
		if msg.err != nil {
			for i := range m.pending {
				if m.pending[i].clientID == msg.clientID {
					m.pending[i].failed = true
				}
			}
			m.status = "send failed: " + client.Message(msg.err)
		}

	case copyResultMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied to clipboard"
		}

	case cursorBlinkMsg:
		if m.state != chatConvoState {
			return m, nil
		}
		if m.inputFocused {
			m.cursorOn = !m.cursorOn
		}
		return m, cursorBlinkCmd()

	case tea.KeyMsg:
		m.cursorOn = true
		switch m.state {
		case chatListState:
			return m.updateList(msg)
		case chatConvoState:
			return m.updateConvo(msg)
		}
	}
	return m, nil
}

// merge appends polled messages the model has not seen yet and retires the
// pending copies they confirm.
func (m *chatModel) merge(incoming []domain.ChatMessage) {
	seen := make(map[int64]bool, len(m.messages))
	for _, x := range m.messages {
		seen[x.ID] = true
	}
	for _, msg := range incoming {
		if seen[msg.ID] {
			continue
		}
		seen[msg.ID] = true
		m.messages = append(m.messages, msg)
		if msg.ClientID != uuid.Nil {
			m.pending = slices.DeleteFunc(m.pending, func(p pendingMessage) bool {
				return p.clientID == msg.ClientID
			})
		}
		if msg.CreatedAt.After(m.since) {
			m.since = msg.CreatedAt
		}
	}
}

func (m chatModel) open(conv domain.Conversation) (chatModel, tea.Cmd) {
	m.state = chatConvoState
	m.openID = conv.ID
	m.openTitle = conv.Title
	m.messages = nil
	m.pending = nil
	m.since = time.Time{}
	m.seq++
	m.input = ""
	m.status = ""
	m.inputFocused = true
	m.cursorOn = true
	return m, tea.Batch(m.loadMessages(), m.markRead(), cursorBlinkCmd())
}

// close leaves the conversation. Bumping seq ends its poll loop.
func (m chatModel) close() (chatModel, tea.Cmd) {
	m.state = chatListState
	m.openID = 0
	m.seq++
	m.messages = nil
	m.pending = nil
	m.since = time.Time{}
	m.input = ""
	m.status = ""
	m.inputFocused = false
	m.loading = true
	return m, m.loadConversations()
}

func (m chatModel) updateList(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.conversations)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(m.conversations) {
			return m.open(m.conversations[m.cursor])
		}
	case "r":
		if m.myID != 0 {
			m.loading = true
			return m, m.loadConversations()
		}
	}
	return m, nil
}

func (m chatModel) updateConvo(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	key := msg.String()

	if m.inputFocused {
		switch key {
		case "esc":
			m.inputFocused = false
			return m, nil
		case "enter":
			body := strings.TrimSpace(m.input)
			if body == "" {
				return m, nil
			}
			m.input = ""
			clientID := uuid.New()
			m.pending = append(m.pending, pendingMessage{clientID: clientID, body: body})
			return m, m.sendMessage(clientID, body)
		default:
			m.input = editRune(m.input, key)
			return m, nil
		}
	}

	// Nav mode
	switch key {
	case "esc":
		return m.close()
	case "enter", "i":
		m.inputFocused = true
		m.cursorOn = true
	case "y":
		if len(m.messages) == 0 {
			m.status = "nothing to copy"
			return m, nil
		}
		text := m.messages[len(m.messages)-1].Body
		return m, func() tea.Msg {
			return copyResultMsg{err: copyToClipboard(text)}
		}
	}
	return m, nil
}

// unread sums unread counters across conversations, for the tab badge.
func (m chatModel) unread() int {
	n := 0
	for _, c := range m.conversations {
		n += c.UnreadCount
	}
	return n
}

func (m chatModel) View() string {
	if m.state == chatConvoState {
		return m.viewConvo()
	}
	return m.viewList()
}

func (m chatModel) viewList() string {
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render("Conversations") + "\n")
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", max(m.width-2, 4))) + "\n")

	switch {
	case !m.loaded, m.loading && len(m.conversations) == 0:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	case m.err != "":
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
		return b.String()
	case len(m.conversations) == 0:
		b.WriteString("\n " + dimStyle.Render("no conversations yet") + "\n")
		return b.String()
	}

	for i, conv := range m.conversations {
		isActive := i == m.cursor
		cursor := "  "
		title := normalStyle.Render(truncStr(conv.Title, 28))
		if isActive {
			cursor = accentStyle.Render("▸") + " "
			title = selectedStyle.Render(truncStr(conv.Title, 28))
		}

		preview := truncStr(oneLine(conv.LastMessage), 40)
		if preview == "" {
			preview = "no messages"
		}

		badge := ""
		if conv.UnreadCount > 0 {
			badge = " " + unreadDotStyle.Render(fmt.Sprintf("●%d", conv.UnreadCount))
		}

		fmt.Fprintf(&b, " %s%s%s  %s  %s\n",
			cursor,
			title,
			badge,
			dimStyle.Render(preview),
			metaStyle.Render(formatTime(conv.UpdatedAt)),
		)
	}
	return b.String()
}

func (m chatModel) viewConvo() string {
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render(m.openTitle) + "\n")
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", max(m.width-2, 4))) + "\n")

	chrome := 3 // header + sep + input
	if m.status != "" {
		chrome++
	}
	viewportHeight := max(m.height-chrome, 2)

	var allLines []string
	for _, msg := range m.messages {
		allLines = append(allLines, strings.Split(m.renderMessage(msg), "\n")...)
	}
	for _, p := range m.pending {
		allLines = append(allLines, strings.Split(m.renderPending(p), "\n")...)
	}

	if len(allLines) == 0 {
		padLines(viewportHeight-1, &b)
		b.WriteString(" " + dimStyle.Render("no messages yet") + "\n")
	} else {
		// Show last N lines
		start := max(len(allLines)-viewportHeight, 0)
		visible := allLines[start:]
		padLines(viewportHeight-len(visible), &b)
		for _, line := range visible {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	b.WriteString(m.renderInput())
	b.WriteByte('\n')

	if m.status != "" {
		b.WriteString(" " + dimStyle.Render(m.status))
	}
	return b.String()
}

// wrapBody word-wraps a message body into the column after the name.
func (m chatModel) wrapBody(body string, style lipgloss.Style) []string {
	bodyWidth := max(m.width-26, 20)
	wrapped := lipgloss.NewStyle().Width(bodyWidth).Render(body)
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = style.Render(lines[i])
	}
	return lines
}

func (m chatModel) joinMessage(timePart, namePart string, lines []string) string {
	result := " " + timePart + "  " + namePart + chatSepStyle.Render(" · ") + lines[0]
	indent := strings.Repeat(" ", 15)
	for _, line := range lines[1:] {
		result += "\n" + indent + line
	}
	return result
}

func (m chatModel) renderMessage(msg domain.ChatMessage) string {
	timePart := metaStyle.Render(fmt.Sprintf("%8s", formatChatTime(msg.CreatedAt)))

	isSelf := m.myID != 0 && msg.SenderID == m.myID
	namePart := chatTextStyle.Bold(true).Render(msg.SenderName)
	bodyStyle := chatTextStyle
	if isSelf {
		namePart = chatSelfNameStyle.Render("you")
		bodyStyle = chatSelfTextStyle
	}
	return m.joinMessage(timePart, namePart, m.wrapBody(msg.Body, bodyStyle))
}

func (m chatModel) renderPending(p pendingMessage) string {
	label := "sending"
	if p.failed {
		label = "failed"
	}
	timePart := chatPendingStyle.Render(fmt.Sprintf("%8s", label))
	return m.joinMessage(timePart, chatSelfNameStyle.Render("you"), m.wrapBody(p.body, chatPendingStyle))
}

func (m chatModel) renderInput() string {
	const timeIndent = "           " // " " + 8-char timestamp + "  "

	sep := chatSepStyle.Render(" · ")
	namePart := chatSelfNameStyle.Render("you")
	if !m.inputFocused {
		if m.input == "" {
			return timeIndent + namePart + sep + inputPlaceholderStyle.Render("type a message...")
		}
		return timeIndent + namePart + sep + dimStyle.Render(m.input)
	}
	cursor := " "
	if m.cursorOn {
		cursor = accentStyle.Render("█")
	}
	return timeIndent + namePart + sep + chatSelfTextStyle.Render(m.input) + cursor
}

func (m chatModel) helpKeys() string {
	switch m.state {
	case chatConvoState:
		if m.inputFocused {
			return helpEntry("enter", "send") + "  " + helpEntry("esc", "nav")
		}
		return helpEntry("enter", "type") + "  " + helpEntry("y", "copy") + "  " + helpEntry("esc", "back")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("r", "reload") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	}
}
