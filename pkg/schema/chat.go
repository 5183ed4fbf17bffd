package schema

import (
	"encoding/json"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ChatRequest is the body posted when sending a message. Context is the
// number of previous messages the bot should take into account; nil leaves
// the choice to the server.
type ChatRequest struct {
	Message string `json:"message"`
	Context *int   `json:"context,omitempty"`
}

// ChatEvent is one reply fragment decoded from a chat stream.
// Text and Cot are nil when the server sent them empty or not at all.
// Reference and Tasks are passed through as the server sent them, and are
// nil when absent.
type ChatEvent struct {
	Text      *string         `json:"text" yaml:"text"`
	Cot       *string         `json:"cot" yaml:"cot"`
	BotID     string          `json:"botId,omitempty" yaml:"bot_id,omitempty"`
	Reference json.RawMessage `json:"reference,omitempty" yaml:"-"`
	Tasks     json.RawMessage `json:"tasks,omitempty" yaml:"-"`
}

// ChatResponse is the reply to a non-streamed message
type ChatResponse struct {
	ChatEvent `yaml:",inline"`
	raw       []byte
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// NewChatResponse returns a reply decoded from body
func NewChatResponse(evt ChatEvent, body []byte) ChatResponse {
	return ChatResponse{ChatEvent: evt, raw: append([]byte(nil), body...)}
}

// Raw returns the response body as sent by the server
func (r ChatResponse) Raw() []byte {
	return r.raw
}

// GetText returns the text, or an empty string
func (e ChatEvent) GetText() string {
	return types.Value(e.Text)
}

// GetCot returns the chain of thought, or an empty string
func (e ChatEvent) GetCot() string {
	return types.Value(e.Cot)
}

///////////////////////////////////////////////////////////////////////////////
// JSON

func (r *ChatResponse) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// The body is not an object: keep it verbatim
		*r = NewChatResponse(ChatEvent{}, data)
		return nil
	}
	*r = NewChatResponse(NewChatEvent(fields), data)
	return nil
}

// MarshalJSON returns the body as sent by the server when it was a single
// JSON value, otherwise the decoded event
func (r ChatResponse) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 && json.Valid(r.raw) {
		return r.raw, nil
	}
	return json.Marshal(r.ChatEvent)
}

///////////////////////////////////////////////////////////////////////////////
// EVENTS

// IsChatEvent returns true if the decoded object carries at least one of
// the text, cot or tasks fields, even if the value is null
func IsChatEvent(fields map[string]json.RawMessage) bool {
	for _, key := range []string{"text", "cot", "tasks"} {
		if _, exists := fields[key]; exists {
			return true
		}
	}
	return false
}

// NewChatEvent maps the fields of a decoded object to a ChatEvent
func NewChatEvent(fields map[string]json.RawMessage) ChatEvent {
	return ChatEvent{
		Text:      nonEmptyString(fields["text"]),
		Cot:       nonEmptyString(fields["cot"]),
		BotID:     stringValue(fields["botId"]),
		Reference: fields["reference"],
		Tasks:     fields["tasks"],
	}
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (e ChatEvent) String() string {
	return types.Stringify(e)
}

func (r ChatResponse) String() string {
	return types.Stringify(r)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// nonEmptyString returns nil unless the value is a non-empty string
func nonEmptyString(v json.RawMessage) *string {
	if s := stringValue(v); s != "" {
		return types.Ptr(s)
	}
	return nil
}

// stringValue returns the value if it is a JSON string, or empty string
func stringValue(v json.RawMessage) string {
	var s string
	if len(v) == 0 {
		return ""
	} else if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}
