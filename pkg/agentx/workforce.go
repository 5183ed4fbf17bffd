package agentx

import (
	"context"

	// Packages
	agentx "github.com/mutablelogic/go-agentx"
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	stream "github.com/mutablelogic/go-agentx/pkg/stream"
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Workforce is a team of agents, which holds conversations through its
// manager agent
type Workforce struct {
	schema.Workforce
	client *Client
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Workforce replies take the whole conversation into account unless
	// told otherwise
	defaultWorkforceContext = -1
)

///////////////////////////////////////////////////////////////////////////////
// CLIENT METHODS

// ListWorkforces returns the workforces the API key has access to
func (c *Client) ListWorkforces(ctx context.Context) ([]*Workforce, error) {
	var response []schema.Workforce
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("teams")); err != nil {
		return nil, err
	}

	result := make([]*Workforce, 0, len(response))
	for _, workforce := range response {
		result = append(result, &Workforce{Workforce: workforce, client: c})
	}
	return result, nil
}

// GetWorkforce returns a workforce by identifier
func (c *Client) GetWorkforce(ctx context.Context, id string) (*Workforce, error) {
	if id == "" {
		return nil, agentx.ErrBadParameter.With("workforce ID cannot be empty")
	}
	workforces, err := c.ListWorkforces(ctx)
	if err != nil {
		return nil, err
	}
	for _, workforce := range workforces {
		if workforce.ID == id {
			return workforce, nil
		}
	}
	return nil, agentx.ErrNotFound.Withf("workforce %q not found", id)
}

///////////////////////////////////////////////////////////////////////////////
// WORKFORCE METHODS

// NewConversation starts a new conversation with the workforce
func (w *Workforce) NewConversation(ctx context.Context) (*Conversation, error) {
	conversation, err := w.client.newConversation(ctx, w.Manager.ID, "teams", w.ID, "conversations", "new")
	if err != nil {
		return nil, err
	}
	conversation.workforceID = w.ID
	return conversation, nil
}

// ListConversations returns the conversations held with the workforce
func (w *Workforce) ListConversations(ctx context.Context) ([]*Conversation, error) {
	conversations, err := w.client.listConversations(ctx, w.Manager.ID, "teams", w.ID, "conversations")
	if err != nil {
		return nil, err
	}
	for _, conversation := range conversations {
		conversation.workforceID = w.ID
	}
	return conversations, nil
}

// Conversation returns a conversation with the workforce with a known
// identifier, without fetching it
func (w *Workforce) Conversation(id string) *Conversation {
	conversation := w.client.conversation(schema.Conversation{ID: id, AgentID: w.Manager.ID})
	conversation.workforceID = w.ID
	return conversation
}

// ChatStream sends a message to a workforce conversation and calls fn for
// each part of the reply as it arrives
func (w *Workforce) ChatStream(ctx context.Context, conversationID, message string, fn stream.EventFn, opts ...ChatOpt) error {
	if conversationID == "" {
		return agentx.ErrBadParameter.With("conversation ID cannot be empty")
	}
	return w.client.workforceChatStream(ctx, conversationID, message, fn, opts...)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) workforceChatStream(ctx context.Context, conversationID, message string, fn stream.EventFn, opts ...ChatOpt) error {
	o := applyChatOpts(opts)
	if o.context == nil {
		o.context = types.Ptr(defaultWorkforceContext)
	}
	req, err := newChatRequest(message, o)
	if err != nil {
		return err
	}
	return c.chatStream(ctx, req, fn, o, "teams", "conversations", conversationID, "jsonmessagesse")
}
