package main

import (
	// Packages
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type AgentCommands struct {
	ListAgents ListAgentsCommand `cmd:"" name:"agents" help:"List agents." group:"AGENT"`
	GetAgent   GetAgentCommand   `cmd:"" name:"agent" help:"Get an agent and make it current." group:"AGENT"`
}

type ListAgentsCommand struct{}

type GetAgentCommand struct {
	ID string `arg:"" name:"id" help:"Agent ID"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListAgentsCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ListAgentsCommand")
	defer func() { endSpan(err) }()

	// List agents
	agents, err := client.ListAgents(parent)
	if err != nil {
		return err
	}

	// Print
	result := make(schema.AgentTable, 0, len(agents))
	for _, agent := range agents {
		result = append(result, agent.Agent)
	}
	return ctx.writeList(result, result, "agent")
}

func (cmd *GetAgentCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "GetAgentCommand",
		attribute.String("agent", cmd.ID),
	)
	defer func() { endSpan(err) }()

	// Get agent
	agent, err := client.GetAgent(parent, cmd.ID)
	if err != nil {
		return err
	}

	// Make it current
	if err := ctx.defaults.SetAgent(agent.ID); err != nil {
		return err
	}

	// Print
	return ctx.writeOne(agent.Agent)
}
