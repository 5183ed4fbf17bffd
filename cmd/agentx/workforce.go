package main

import (
	// Packages
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type WorkforceCommands struct {
	ListWorkforces ListWorkforcesCommand `cmd:"" name:"workforces" help:"List workforces." group:"WORKFORCE"`
	GetWorkforce   GetWorkforceCommand   `cmd:"" name:"workforce" help:"Get a workforce and make it current." group:"WORKFORCE"`
}

type ListWorkforcesCommand struct{}

type GetWorkforceCommand struct {
	ID string `arg:"" name:"id" help:"Workforce ID"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListWorkforcesCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ListWorkforcesCommand")
	defer func() { endSpan(err) }()

	// List workforces
	workforces, err := client.ListWorkforces(parent)
	if err != nil {
		return err
	}

	// Print
	result := make(schema.WorkforceTable, 0, len(workforces))
	for _, workforce := range workforces {
		result = append(result, workforce.Workforce)
	}
	return ctx.writeList(result, result, "workforce")
}

func (cmd *GetWorkforceCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "GetWorkforceCommand",
		attribute.String("workforce", cmd.ID),
	)
	defer func() { endSpan(err) }()

	// Get workforce
	workforce, err := client.GetWorkforce(parent, cmd.ID)
	if err != nil {
		return err
	}

	// Make it current
	if err := ctx.defaults.SetWorkforce(workforce.ID); err != nil {
		return err
	}

	// Print
	return ctx.writeOne(workforce.Workforce)
}
