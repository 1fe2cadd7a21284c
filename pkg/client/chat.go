package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aulaschool/aula/pkg/domain"
)

// ListConversations returns the conversations a user takes part in.
func (c *Client) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	var convs []domain.Conversation
	if err := c.get(ctx, "api/chat/conversations", Params{"userId": userID}, &convs); err != nil {
		return nil, fmt.Errorf("client.ListConversations: %w", err)
	}
	return convs, nil
}

// StartConversation creates (or returns the existing) conversation between participants.
func (c *Client) StartConversation(ctx context.Context, participantIDs []int64) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := c.post(ctx, "api/chat/conversations", map[string][]int64{"participantIds": participantIDs}, &conv); err != nil {
		return nil, fmt.Errorf("client.StartConversation: %w", err)
	}
	return &conv, nil
}

// GetMessages returns messages of a conversation, oldest first. When since is
// non-zero only messages created at or after it are returned, which is how
// the chat widget polls. The bound is inclusive: messages sharing the newest
// timestamp a poller has seen come back again, so pollers dedupe by ID.
func (c *Client) GetMessages(ctx context.Context, conversationID int64, since time.Time) ([]domain.ChatMessage, error) {
	q := Params{}
	if !since.IsZero() {
		q["since"] = since.UTC().Format(time.RFC3339Nano)
	}
	var msgs []domain.ChatMessage
	if err := c.get(ctx, fmt.Sprintf("api/chat/conversations/%d/messages", conversationID), q, &msgs); err != nil {
		return nil, fmt.Errorf("client.GetMessages: %w", err)
	}
	return msgs, nil
}

// SendMessage posts a message. The message carries a fresh client ID, also
// returned on the stored copy, so pollers can match it.
func (c *Client) SendMessage(ctx context.Context, conversationID int64, body string) (*domain.ChatMessage, error) {
	return c.SendMessageWithID(ctx, conversationID, uuid.New(), body)
}

// SendMessageWithID is SendMessage with a caller-chosen client ID.
func (c *Client) SendMessageWithID(ctx context.Context, conversationID int64, clientID uuid.UUID, body string) (*domain.ChatMessage, error) {
	req := struct {
		Body     string    `json:"body"`
		ClientID uuid.UUID `json:"clientId"`
	}{Body: body, ClientID: clientID}
	var msg domain.ChatMessage
	if err := c.post(ctx, fmt.Sprintf("api/chat/conversations/%d/messages", conversationID), req, &msg); err != nil {
		return nil, fmt.Errorf("client.SendMessage: %w", err)
	}
	return &msg, nil
}

// MarkConversationRead resets the unread counter of a conversation.
func (c *Client) MarkConversationRead(ctx context.Context, conversationID int64) error {
	if err := c.post(ctx, fmt.Sprintf("api/chat/conversations/%d/read", conversationID), nil, nil); err != nil {
		return fmt.Errorf("client.MarkConversationRead: %w", err)
	}
	return nil
}
