package model

import (
	"context"
	"time"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of conversation history.
type Message struct {
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// UserMessage builds a user-authored message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content, At: time.Now().UTC()}
}

// AssistantMessage builds an assistant-authored message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content, At: time.Now().UTC()}
}

type HistoryRepository interface {
	// AddMessage appends a message to the conversation history for the given user
	AddMessage(ctx context.Context, userID string, message Message) error

	// LoadHistory retrieves the conversation history for a user
	LoadHistory(ctx context.Context, userID string) (*ConversationHistory, error)

	// ClearHistory removes all conversation history for a user
	ClearHistory(ctx context.Context, userID string) error

	// GetMessageCount returns the number of messages in the conversation
	GetMessageCount(ctx context.Context, userID string) (int, error)
}

// ConversationHistory represents loaded conversation data with metadata.
type ConversationHistory struct {
	UserID   string
	Messages []Message
}
