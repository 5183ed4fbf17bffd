package main

import (
	"context"

	// Packages
	agentx "github.com/mutablelogic/go-agentx"
	api "github.com/mutablelogic/go-agentx/pkg/agentx"
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ConversationCommands struct {
	ListConversations ListConversationsCommand `cmd:"" name:"conversations" help:"List conversations with the current agent or workforce." group:"CONVERSATION"`
	NewConversation   NewConversationCommand   `cmd:"" name:"new-conversation" help:"Start a conversation and make it current." group:"CONVERSATION"`
	ListMessages      ListMessagesCommand      `cmd:"" name:"messages" help:"List the messages in a conversation." group:"CONVERSATION"`
}

type ListConversationsCommand struct {
	Agent     string `name:"agent" help:"Agent ID (overrides the current agent)" optional:"" xor:"with"`
	Workforce string `name:"workforce" help:"Workforce ID (overrides the current workforce)" optional:"" xor:"with"`
	All       bool   `name:"all" help:"List conversations with all agents" xor:"with"`
}

type NewConversationCommand struct {
	Agent     string `name:"agent" help:"Agent ID (overrides the current agent)" optional:"" xor:"with"`
	Workforce string `name:"workforce" help:"Workforce ID (overrides the current workforce)" optional:"" xor:"with"`
}

type ListMessagesCommand struct {
	Conversation string `name:"conversation" help:"Conversation ID (overrides the current conversation)" optional:""`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListConversationsCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ListConversationsCommand",
		attribute.Bool("all", cmd.All),
	)
	defer func() { endSpan(err) }()

	// List conversations
	var conversations []*api.Conversation
	if cmd.All {
		conversations, err = client.ListAllConversations(parent)
	} else {
		conversations, err = ctx.listConversations(parent, client, cmd.Agent, cmd.Workforce)
	}
	if err != nil {
		return err
	}

	// Print
	result := schema.ConversationTable{
		Conversations: make([]schema.Conversation, 0, len(conversations)),
		Current:       ctx.defaults.Conversation(),
	}
	for _, conversation := range conversations {
		result.Conversations = append(result.Conversations, conversation.Conversation)
	}
	return ctx.writeList(result.Conversations, result, "conversation")
}

func (cmd *NewConversationCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "NewConversationCommand")
	defer func() { endSpan(err) }()

	// Create the conversation
	conversation, err := ctx.newConversation(parent, client, cmd.Agent, cmd.Workforce)
	if err != nil {
		return err
	}

	// Print
	return ctx.writeOne(conversation.Conversation)
}

func (cmd *ListMessagesCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ListMessagesCommand")
	defer func() { endSpan(err) }()

	// Get the conversation
	conversation, err := ctx.conversation(parent, client, cmd.Conversation)
	if err != nil {
		return err
	}

	// List messages
	messages, err := conversation.ListMessages(parent)
	if err != nil {
		return err
	}

	// Print
	return ctx.writeList(messages, schema.MessageTable(messages), "message")
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// listConversations lists conversations with an agent or workforce, falling
// back to the current one
func (g *Globals) listConversations(ctx context.Context, client *api.Client, agent, workforce string) ([]*api.Conversation, error) {
	agent, workforce = g.target(agent, workforce)
	switch {
	case workforce != "":
		w, err := client.GetWorkforce(ctx, workforce)
		if err != nil {
			return nil, err
		}
		return w.ListConversations(ctx)
	case agent != "":
		a, err := client.GetAgent(ctx, agent)
		if err != nil {
			return nil, err
		}
		return a.ListConversations(ctx)
	default:
		return nil, agentx.ErrBadParameter.With("no current agent or workforce, use --agent or --workforce")
	}
}

// newConversation starts a conversation with an agent or workforce, falling
// back to the current one, and makes it current
func (g *Globals) newConversation(ctx context.Context, client *api.Client, agent, workforce string) (*api.Conversation, error) {
	var conversation *api.Conversation

	agent, workforce = g.target(agent, workforce)
	switch {
	case workforce != "":
		w, err := client.GetWorkforce(ctx, workforce)
		if err != nil {
			return nil, err
		} else if conversation, err = w.NewConversation(ctx); err != nil {
			return nil, err
		}
	case agent != "":
		a, err := client.GetAgent(ctx, agent)
		if err != nil {
			return nil, err
		} else if conversation, err = a.NewConversation(ctx); err != nil {
			return nil, err
		}
	default:
		return nil, agentx.ErrBadParameter.With("no current agent or workforce, use --agent or --workforce")
	}

	// Make it current
	if err := g.defaults.SetConversation(conversation.AgentID, conversation.Workforce(), conversation.ID); err != nil {
		return nil, err
	}

	// Return success
	return conversation, nil
}

// conversation returns a conversation with the current agent or workforce,
// which is the current conversation if id is empty
func (g *Globals) conversation(ctx context.Context, client *api.Client, id string) (*api.Conversation, error) {
	if id == "" {
		id = g.defaults.Conversation()
	}
	if id == "" {
		return nil, agentx.ErrBadParameter.With("no current conversation, use new-conversation or --conversation")
	}

	// Workforce conversations need the manager agent
	if workforce := g.defaults.Workforce(); workforce != "" {
		w, err := client.GetWorkforce(ctx, workforce)
		if err != nil {
			return nil, err
		}
		return w.Conversation(id), nil
	} else if agent := g.defaults.Agent(); agent != "" {
		return client.Conversation(agent, id), nil
	}
	return nil, agentx.ErrBadParameter.With("no current agent or workforce, use the agent or workforce command")
}

// target returns the agent or workforce given on the command line, or the
// current one if neither is given
func (g *Globals) target(agent, workforce string) (string, string) {
	if agent != "" || workforce != "" {
		return agent, workforce
	}
	if workforce := g.defaults.Workforce(); workforce != "" {
		return "", workforce
	}
	return g.defaults.Agent(), ""
}
