package models

import "time"

type Conversation struct {
	ID           string    `json:"_id"`
	Participants []UserRef `json:"participants"`
	LastMessage  *Message  `json:"lastMessage,omitempty"`
	Unread       int       `json:"unread,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Message struct {
	ID             string    `json:"_id"`
	ConversationID string    `json:"conversationId"`
	Sender         UserRef   `json:"sender"`
	Body           string    `json:"body"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

type MessageDraft struct {
	ConversationID string `json:"conversationId"`
	Body           string `json:"body"`
	ClientID       string `json:"clientId,omitempty"`
}

// TypingSignal is carried over the realtime bridge, not the REST surface.
type TypingSignal struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
}

type Presence struct {
	UserID string `json:"userId"`
	Online bool   `json:"online"`
}
