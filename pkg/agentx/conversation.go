package agentx

import (
	"context"
	"net/http"
	"sort"
	"sync"

	// Packages
	agentx "github.com/mutablelogic/go-agentx"
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	stream "github.com/mutablelogic/go-agentx/pkg/stream"
	client "github.com/mutablelogic/go-client"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Conversation is a chat thread with an agent or workforce
type Conversation struct {
	schema.Conversation
	client      *Client
	workforceID string
}

///////////////////////////////////////////////////////////////////////////////
// CLIENT METHODS

// Conversation returns a conversation with a known identifier, held with
// the given agent, without fetching it
func (c *Client) Conversation(agentID, id string) *Conversation {
	return c.conversation(schema.Conversation{ID: id, AgentID: agentID})
}

// ListAllConversations returns the conversations held with every agent,
// most recently updated first. Agents are queried in parallel.
func (c *Client) ListAllConversations(ctx context.Context) ([]*Conversation, error) {
	var mu sync.Mutex
	var result []*Conversation

	agents, err := c.ListAgents(ctx)
	if err != nil {
		return nil, err
	}

	// Collect conversations from all agents in parallel
	wg, ctx := errgroup.WithContext(ctx)
	for _, agent := range agents {
		wg.Go(func() error {
			conversations, err := agent.ListConversations(ctx)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			result = append(result, conversations...)
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}

	// Most recent first
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].UpdatedAt, result[j].UpdatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	// Return success
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// CONVERSATION METHODS

// NewConversation starts a new conversation with the same agent, or the
// same workforce when the conversation belongs to one
func (c *Conversation) NewConversation(ctx context.Context) (*Conversation, error) {
	if c.workforceID != "" {
		return c.client.newConversation(ctx, c.AgentID, "teams", c.workforceID, "conversations", "new")
	} else if c.AgentID == "" {
		return nil, agentx.ErrBadParameter.With("conversation has no agent")
	}
	return c.client.newConversation(ctx, c.AgentID, "agents", c.AgentID, "conversations", "new")
}

// ListMessages returns the message history of the conversation
func (c *Conversation) ListMessages(ctx context.Context) ([]schema.Message, error) {
	if c.AgentID == "" {
		return nil, agentx.ErrBadParameter.With("conversation has no agent")
	}

	var response schema.ConversationDetail
	if err := c.client.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("agents", c.AgentID, "conversations", c.ID)); err != nil {
		return nil, notFound(err, "conversation "+c.ID)
	} else if response.Messages == nil {
		return nil, agentx.ErrNotFound.Withf("no messages found in conversation %q", c.ID)
	}

	// Return success
	return response.Messages, nil
}

// Chat sends a message and waits for the complete reply
func (c *Conversation) Chat(ctx context.Context, message string, opts ...ChatOpt) (*schema.ChatResponse, error) {
	req, err := newChatRequest(message, applyChatOpts(opts))
	if err != nil {
		return nil, err
	}
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	// The reply is decoded whatever its content type
	var response stream.Response
	if err := c.client.DoWithContext(ctx, payload, &response, client.OptPath("conversations", c.ID, "message"), client.OptNoTimeout()); err != nil {
		return nil, err
	}
	return &response.ChatResponse, nil
}

// ChatStream sends a message and calls fn for each part of the reply as it
// arrives. It returns when the reply is complete, on error, or when fn
// returns an error.
func (c *Conversation) ChatStream(ctx context.Context, message string, fn stream.EventFn, opts ...ChatOpt) error {
	if c.workforceID != "" {
		return c.client.workforceChatStream(ctx, c.ID, message, fn, opts...)
	}

	o := applyChatOpts(opts)
	req, err := newChatRequest(message, o)
	if err != nil {
		return err
	}
	return c.client.chatStream(ctx, req, fn, o, "conversations", c.ID, "jsonmessagesse")
}

// Workforce returns the identifier of the workforce the conversation
// belongs to, or an empty string
func (c *Conversation) Workforce() string {
	return c.workforceID
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) conversation(conversation schema.Conversation) *Conversation {
	return &Conversation{Conversation: conversation, client: c}
}

func (c *Client) newConversation(ctx context.Context, agentID string, path ...any) (*Conversation, error) {
	if agentID == "" {
		return nil, agentx.ErrBadParameter.With("agent ID cannot be empty")
	}
	payload, err := client.NewJSONRequest(schema.NewConversationRequest{Type: schema.ConversationTypeChat})
	if err != nil {
		return nil, err
	}

	var response schema.Conversation
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath(path...)); err != nil {
		return nil, err
	}
	response.AgentID = agentID
	return c.conversation(response), nil
}

func (c *Client) listConversations(ctx context.Context, agentID string, path ...any) ([]*Conversation, error) {
	var response []schema.Conversation
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath(path...)); err != nil {
		return nil, err
	}

	result := make([]*Conversation, 0, len(response))
	for _, conversation := range response {
		conversation.AgentID = agentID
		result = append(result, c.conversation(conversation))
	}
	return result, nil
}

func (c *Client) chatStream(ctx context.Context, req schema.ChatRequest, fn stream.EventFn, o chatOptions, path ...any) error {
	payload, err := client.NewJSONRequestEx(http.MethodPost, req, client.ContentTypeAny)
	if err != nil {
		return err
	}

	// The reader decodes the body whatever its content type
	reader := stream.NewReader(fn, stream.WithLogger(o.logger), stream.WithReadSize(o.readSize))
	return c.DoWithContext(ctx, payload, reader, client.OptPath(path...), client.OptNoTimeout())
}

func newChatRequest(message string, o chatOptions) (schema.ChatRequest, error) {
	if message == "" {
		return schema.ChatRequest{}, agentx.ErrBadParameter.With("message cannot be empty")
	}
	return schema.ChatRequest{Message: message, Context: o.context}, nil
}
