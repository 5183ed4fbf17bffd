package schema

import (
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Conversation is a chat thread between users and one or more bots.
// AgentID is not sent by the server: it is the agent (or workforce manager)
// the conversation was listed or created through.
type Conversation struct {
	ID        string     `json:"_id" yaml:"id"`
	AgentID   string     `json:"agent_id,omitempty" yaml:"agent_id,omitempty"`
	Title     string     `json:"title,omitempty" yaml:"title,omitempty"`
	Type      string     `json:"type,omitempty" yaml:"type,omitempty"`
	Users     []string   `json:"users,omitempty" yaml:"users,omitempty"`
	Agents    []string   `json:"bots,omitempty" yaml:"bots,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
}

// NewConversationRequest is the body posted to create a conversation
type NewConversationRequest struct {
	Type string `json:"type"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ConversationTypeChat = "chat"
)

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c Conversation) String() string {
	return types.Stringify(c)
}
