package agentx

import (
	"context"

	// Packages
	agentx "github.com/mutablelogic/go-agentx"
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Agent is a bot on the platform, which can hold conversations
type Agent struct {
	schema.Agent
	client *Client
}

///////////////////////////////////////////////////////////////////////////////
// CLIENT METHODS

// GetAgent returns an agent by identifier
func (c *Client) GetAgent(ctx context.Context, id string) (*Agent, error) {
	if id == "" {
		return nil, agentx.ErrBadParameter.With("agent ID cannot be empty")
	}
	agent, err := c.cache.GetAgent(ctx, id, c.getAgent)
	if err != nil {
		return nil, err
	}
	return c.agent(*agent), nil
}

// ListAgents returns the agents the API key has access to, sorted by name
func (c *Client) ListAgents(ctx context.Context) ([]*Agent, error) {
	agents, err := c.cache.ListAgents(ctx, c.listAgents)
	if err != nil {
		return nil, err
	}
	result := make([]*Agent, 0, len(agents))
	for _, agent := range agents {
		result = append(result, c.agent(agent))
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// AGENT METHODS

// NewConversation starts a new conversation with the agent
func (a *Agent) NewConversation(ctx context.Context) (*Conversation, error) {
	return a.client.newConversation(ctx, a.ID, "agents", a.ID, "conversations", "new")
}

// ListConversations returns the conversations held with the agent
func (a *Agent) ListConversations(ctx context.Context) ([]*Conversation, error) {
	return a.client.listConversations(ctx, a.ID, "agents", a.ID, "conversations")
}

// GetConversation returns a conversation held with the agent by identifier
func (a *Agent) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	if id == "" {
		return nil, agentx.ErrBadParameter.With("conversation ID cannot be empty")
	}
	conversations, err := a.ListConversations(ctx)
	if err != nil {
		return nil, err
	}
	for _, conversation := range conversations {
		if conversation.ID == id {
			return conversation, nil
		}
	}
	return nil, agentx.ErrNotFound.Withf("conversation %q not found", id)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) agent(agent schema.Agent) *Agent {
	return &Agent{Agent: agent, client: c}
}

func (c *Client) getAgent(ctx context.Context, id string) (*schema.Agent, error) {
	var response schema.Agent
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("agents", id)); err != nil {
		return nil, notFound(err, "agent "+id)
	}
	if response.ID == "" {
		response.ID = id
	}
	return &response, nil
}

func (c *Client) listAgents(ctx context.Context) ([]schema.Agent, error) {
	var response []schema.Agent
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("agents")); err != nil {
		return nil, err
	}
	return response, nil
}
