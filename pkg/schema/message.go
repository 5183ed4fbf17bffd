package schema

import (
	"bytes"
	"encoding/json"
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Role of the author of a message
type Role string

// Message is a single entry in a conversation history
type Message struct {
	ID             string     `json:"id" yaml:"id"`
	ConversationID string     `json:"conversationId,omitempty" yaml:"conversation_id,omitempty"`
	Role           Role       `json:"role" yaml:"role"`
	BotID          string     `json:"botId,omitempty" yaml:"bot_id,omitempty"`
	UserID         string     `json:"userId,omitempty" yaml:"user_id,omitempty"`
	Text           *string    `json:"text" yaml:"text"`
	Cot            *string    `json:"cot" yaml:"cot"`
	CreatedAt      *time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
}

// ConversationDetail is the response when fetching a single conversation
type ConversationDetail struct {
	Conversation `yaml:",inline"`
	Messages     []Message `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// messageWire is the shape the server sends, which carries the bot as
// a separate field rather than a role
type messageWire struct {
	UID            string          `json:"_id"`
	ID             string          `json:"id"`
	ConversationID string          `json:"conversationId"`
	Bot            json.RawMessage `json:"bot"`
	BotID          string          `json:"botId"`
	UserID         string          `json:"userId"`
	Text           *string         `json:"text"`
	Cot            *string         `json:"cot"`
	CreatedAt      *time.Time      `json:"createdAt"`
	UpdatedAt      *time.Time      `json:"updatedAt"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

///////////////////////////////////////////////////////////////////////////////
// JSON

// UnmarshalJSON derives the role from the presence of a truthy bot field
func (m *Message) UnmarshalJSON(data []byte) error {
	var wire messageWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*m = Message{
		ID:             wire.UID,
		ConversationID: wire.ConversationID,
		Role:           RoleUser,
		BotID:          wire.BotID,
		UserID:         wire.UserID,
		Text:           wire.Text,
		Cot:            wire.Cot,
		CreatedAt:      wire.CreatedAt,
		UpdatedAt:      wire.UpdatedAt,
	}
	if m.ID == "" {
		m.ID = wire.ID
	}
	if truthy(wire.Bot) {
		m.Role = RoleBot
	}

	// Return success
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Message) String() string {
	return types.Stringify(m)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// truthy returns false for absent, null, false, zero and empty string values
func truthy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	switch string(v) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}
