package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a chat thread between two or more users.
type Conversation struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	ParticipantIDs []int64   `json:"participantIds"`
	LastMessage    string    `json:"lastMessage,omitempty"`
	UnreadCount    int       `json:"unreadCount"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ChatMessage is one message in a conversation. ClientID is generated by the
// sender so a polled copy can be matched to its optimistic local copy.
type ChatMessage struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	SenderID       int64     `json:"senderId"`
	SenderName     string    `json:"senderName"`
	Body           string    `json:"body"`
	ClientID       uuid.UUID `json:"clientId"`
	CreatedAt      time.Time `json:"createdAt"`
}
