package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/aulaschool/aula/pkg/client"
	"github.com/aulaschool/aula/pkg/domain"
)

func newTestChatModel() chatModel {
	m := newChatModel(nil, time.Second)
	m.width = 80
	m.height = 24
	m.myID = 7
	return m
}

func testConversations() []domain.Conversation {
	return []domain.Conversation{
		{ID: 1, Title: "Ana Pérez", LastMessage: "¿Mañana hay clase?", UnreadCount: 2, UpdatedAt: time.Now()},
		{ID: 2, Title: "5to B padres", LastMessage: "Gracias!", UpdatedAt: time.Now().Add(-2 * time.Hour)},
	}
}

// openConvo loads the list and opens the first conversation.
func openConvo(t *testing.T) chatModel {
	t.Helper()
	m := newTestChatModel()
	m, _ = m.Update(chatConversationsLoadedMsg{conversations: testConversations()})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != chatConvoState {
		t.Fatalf("expected chatConvoState after enter, got %d", m.state)
	}
	return m
}

func TestChatInitWaitsForUser(t *testing.T) {
	m := newChatModel(nil, time.Second)
	if cmd := m.Init(); cmd != nil {
		t.Error("expected no load before the user is known")
	}

	m, _ = m.Update(meLoadedMsg{me: &domain.User{ID: 7}})
	if m.myID != 7 {
		t.Fatalf("myID = %d, want 7", m.myID)
	}
	if cmd := m.Init(); cmd == nil {
		t.Error("expected conversation load once the user is known")
	}
}

func TestChatShowsIdentityError(t *testing.T) {
	m := newChatModel(nil, time.Second)
	m, cmd := m.Update(meLoadedMsg{err: &client.RequestError{StatusCode: 401, Message: "Unauthorized"}})
	if cmd != nil {
		t.Error("expected no command on a failed identity load")
	}
	if cmd := m.Init(); cmd != nil {
		t.Error("expected no conversation load without a user")
	}
	view := m.View()
	if strings.Contains(view, "loading") {
		t.Errorf("still loading after identity failure:\n%s", view)
	}
	if !strings.Contains(view, "error: Unauthorized") {
		t.Errorf("expected gateway message in view, got:\n%s", view)
	}
}

func TestChatListRendersRows(t *testing.T) {
	m := newTestChatModel()
	m, _ = m.Update(chatConversationsLoadedMsg{conversations: testConversations()})

	view := m.View()
	for _, want := range []string{"Ana Pérez", "5to B padres", "¿Mañana hay clase?", "●2"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in chat list, got:\n%s", want, view)
		}
	}
	if got := m.unread(); got != 2 {
		t.Errorf("unread() = %d, want 2", got)
	}
}

func TestChatListEmptyAndError(t *testing.T) {
	m := newTestChatModel()
	m, _ = m.Update(chatConversationsLoadedMsg{})
	if !strings.Contains(m.View(), "no conversations yet") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}

	m, _ = m.Update(chatConversationsLoadedMsg{err: &client.RequestError{StatusCode: 503, Message: "Service Unavailable"}})
	if !strings.Contains(m.View(), "error: Service Unavailable") {
		t.Errorf("expected error message, got:\n%s", m.View())
	}
}

func TestChatEnterOpensConvo(t *testing.T) {
	m := newTestChatModel()
	m, _ = m.Update(chatConversationsLoadedMsg{conversations: testConversations()})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.openID != 2 || m.openTitle != "5to B padres" {
		t.Errorf("opened %d %q, want 2 %q", m.openID, m.openTitle, "5to B padres")
	}
	if !m.inputFocused {
		t.Error("expected input focused after opening")
	}
	if cmd == nil {
		t.Error("expected load messages command, got nil")
	}
}

func TestChatPollSchedulesNextTickAndAdvancesCursor(t *testing.T) {
	m := openConvo(t)
	t1 := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	m, cmd := m.Update(chatMessagesLoadedMsg{conversationID: m.openID, seq: m.seq, messages: []domain.ChatMessage{
		{ID: 10, SenderID: 3, SenderName: "Ana", Body: "hola", CreatedAt: t1},
		{ID: 11, SenderID: 7, SenderName: "Yo", Body: "buenas", CreatedAt: t2},
	}})
	if cmd == nil {
		t.Fatal("expected next poll tick to be scheduled")
	}
	if !m.since.Equal(t2) {
		t.Errorf("since = %v, want %v", m.since, t2)
	}

	// A tick of the live loop asks for more.
	if _, cmd := m.Update(chatPollTickMsg{conversationID: m.openID, seq: m.seq}); cmd == nil {
		t.Error("expected poll tick to trigger a load")
	}

	// The same messages polled again are not duplicated.
	m, _ = m.Update(chatMessagesLoadedMsg{conversationID: m.openID, seq: m.seq, messages: []domain.ChatMessage{
		{ID: 11, SenderID: 7, Body: "buenas", CreatedAt: t2},
	}})
	if len(m.messages) != 2 {
		t.Errorf("got %d messages, want 2", len(m.messages))
	}
}

func TestChatPollKeepsLateMessageWithSameTimestamp(t *testing.T) {
	m := openConvo(t)
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	m, _ = m.Update(chatMessagesLoadedMsg{conversationID: m.openID, seq: m.seq, messages: []domain.ChatMessage{
		{ID: 30, SenderID: 3, Body: "uno", CreatedAt: at},
	}})
	// The inclusive cursor returns the seen message alongside one stored
	// later with the same timestamp.
	m, _ = m.Update(chatMessagesLoadedMsg{conversationID: m.openID, seq: m.seq, messages: []domain.ChatMessage{
		{ID: 30, SenderID: 3, Body: "uno", CreatedAt: at},
		{ID: 31, SenderID: 4, Body: "dos", CreatedAt: at},
	}})
	if len(m.messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(m.messages))
	}
	if m.messages[1].ID != 31 {
		t.Errorf("second message ID = %d, want 31", m.messages[1].ID)
	}
	if !m.since.Equal(at) {
		t.Errorf("since = %v, want %v", m.since, at)
	}
}

func TestChatPendingUntilPolledCopyArrives(t *testing.T) {
	m := openConvo(t)
	m.input = "nos vemos"

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected send command on enter with non-empty input")
	}
	if m.input != "" {
		t.Errorf("expected input cleared after send, got %q", m.input)
	}
	if len(m.pending) != 1 {
		t.Fatalf("got %d pending, want 1", len(m.pending))
	}
	id := m.pending[0].clientID
	if !strings.Contains(m.View(), "sending") {
		t.Errorf("expected pending marker in view, got:\n%s", m.View())
	}

	// The send succeeding alone does not confirm the message.
	m, _ = m.Update(chatSentMsg{clientID: id})
	if len(m.pending) != 1 {
		t.Fatalf("pending cleared before the polled copy arrived")
	}

	m, _ = m.Update(chatMessagesLoadedMsg{conversationID: m.openID, seq: m.seq, messages: []domain.ChatMessage{
		{ID: 20, SenderID: 7, Body: "nos vemos", ClientID: id, CreatedAt: time.Now()},
	}})
	if len(m.pending) != 0 {
		t.Errorf("got %d pending after polled copy, want 0", len(m.pending))
	}
	if len(m.messages) != 1 {
		t.Errorf("got %d messages, want 1", len(m.messages))
	}
	if strings.Contains(m.View(), "sending") {
		t.Errorf("pending marker still shown:\n%s", m.View())
	}
}

func TestChatSendFailureMarksPending(t *testing.T) {
	m := openConvo(t)
	m.input = "hola"
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	id := m.pending[0].clientID

	m, _ = m.Update(chatSentMsg{clientID: id, err: &client.RequestError{StatusCode: 500, Message: "boom"}})
	if !m.pending[0].failed {
		t.Error("expected pending message to be marked failed")
	}
	if !strings.Contains(m.status, "send failed: boom") {
		t.Errorf("status = %q", m.status)
	}
}

func TestChatEscStopsPolling(t *testing.T) {
	m := openConvo(t)
	openID, oldSeq := m.openID, m.seq

	m.inputFocused = false
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != chatListState {
		t.Fatalf("expected chatListState after esc, got %d", m.state)
	}
	if cmd == nil {
		t.Error("expected conversation reload after closing")
	}

	// Late results and ticks of the closed loop are dropped.
	if _, cmd := m.Update(chatPollTickMsg{conversationID: openID, seq: oldSeq}); cmd != nil {
		t.Error("expected no load from a stale poll tick")
	}
	m, cmd = m.Update(chatMessagesLoadedMsg{conversationID: openID, seq: oldSeq, messages: []domain.ChatMessage{{ID: 1}}})
	if cmd != nil {
		t.Error("expected no further tick from a stale poll result")
	}
	if len(m.messages) != 0 {
		t.Errorf("stale messages merged: %v", m.messages)
	}
}

func TestChatReopenStartsNewPollLoop(t *testing.T) {
	m := openConvo(t)
	first := m.seq
	m.inputFocused = false
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = m.Update(chatConversationsLoadedMsg{conversations: testConversations()})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.seq == first {
		t.Errorf("seq = %d, want a new generation", m.seq)
	}
	if _, cmd := m.Update(chatPollTickMsg{conversationID: m.openID, seq: first}); cmd != nil {
		t.Error("tick from the first loop should be ignored")
	}
}

func TestChatCopyNewestMessage(t *testing.T) {
	orig := copyToClipboard
	defer func() { copyToClipboard = orig }()
	var copied string
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	m := openConvo(t)
	m.inputFocused = false

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if m.status != "nothing to copy" {
		t.Errorf("status = %q, want nothing to copy", m.status)
	}

	m, _ = m.Update(chatMessagesLoadedMsg{conversationID: m.openID, seq: m.seq, messages: []domain.ChatMessage{
		{ID: 1, Body: "primero", CreatedAt: time.Now()},
		{ID: 2, Body: "último", CreatedAt: time.Now()},
	}})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	m, _ = m.Update(cmd())
	if copied != "último" {
		t.Errorf("copied %q, want %q", copied, "último")
	}
	if m.status != "copied to clipboard" {
		t.Errorf("status = %q", m.status)
	}

	m, _ = m.Update(copyResultMsg{err: errors.New("no clipboard")})
	if m.status != "copy failed: no clipboard" {
		t.Errorf("status = %q", m.status)
	}
}

func TestChatConvoRendersMessages(t *testing.T) {
	m := openConvo(t)
	m.messages = []domain.ChatMessage{
		{ID: 1, SenderID: 3, SenderName: "Ana", Body: "Hola desde Ana", CreatedAt: time.Now()},
		{ID: 2, SenderID: 7, SenderName: "Luis", Body: "Hola Ana", CreatedAt: time.Now(), ClientID: uuid.New()},
	}

	view := m.View()
	if !strings.Contains(view, "Hola desde Ana") || !strings.Contains(view, "Ana") {
		t.Errorf("expected Ana's message in convo view, got:\n%s", view)
	}
	if !strings.Contains(view, "you") {
		t.Errorf("expected own message labelled you, got:\n%s", view)
	}
}

func TestChatTypingEditsInput(t *testing.T) {
	m := openConvo(t)
	for _, r := range "hola" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.input != "hol" {
		t.Errorf("input = %q, want %q", m.input, "hol")
	}
}
