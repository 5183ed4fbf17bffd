package main

import (
	"fmt"

	// Packages
	version "github.com/mutablelogic/go-agentx/pkg/version"
	otel "github.com/mutablelogic/go-client/pkg/otel"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ProfileCommand struct{}

type VersionCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ProfileCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ProfileCommand")
	defer func() { endSpan(err) }()

	// Get profile
	profile, err := client.GetProfile(parent)
	if err != nil {
		return err
	}

	// Print
	return ctx.writeOne(profile)
}

func (cmd *VersionCommand) Run(ctx *Globals) error {
	fmt.Println(string(version.JSON(ctx.execName)))
	return nil
}
