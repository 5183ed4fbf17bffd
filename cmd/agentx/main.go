package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	api "github.com/mutablelogic/go-agentx/pkg/agentx"
	version "github.com/mutablelogic/go-agentx/pkg/version"
	client "github.com/mutablelogic/go-client"
	otelglobal "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// API
	APIKey   string        `name:"api-key" env:"AGENTX_API_KEY" help:"AgentX API key"`
	Endpoint string        `name:"endpoint" env:"AGENTX_ENDPOINT" help:"AgentX API endpoint" optional:""`
	Timeout  time.Duration `name:"timeout" help:"Timeout for requests, except chat" default:"30s"`

	// Output
	Format string `name:"format" enum:"table,json,yaml" default:"table" help:"Output format (table, json, yaml)"`

	// Context
	ctx      context.Context
	tracer   trace.Tracer
	defaults *Defaults
	execName string
}

type CLI struct {
	Globals

	// Commands
	AgentCommands
	WorkforceCommands
	ConversationCommands
	Chat    ChatCommand    `cmd:"" name:"chat" help:"Send a message to a conversation." group:"CHAT"`
	Profile ProfileCommand `cmd:"" name:"profile" help:"Show the account which owns the API key."`
	Version VersionCommand `cmd:"" name:"version" help:"Print the version."`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultsFile = "defaults.json"
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	name := execName()
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(name),
		kong.Description("AgentX command line interface"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = name
	cli.Globals.tracer = otelglobal.GetTracerProvider().Tracer(version.Product)

	// Load the defaults
	defaults, err := NewDefaults(defaultsPath(name))
	cmd.FatalIfErrorf(err)
	cli.Globals.defaults = defaults

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Client returns an API client configured from the global flags
func (g *Globals) Client() (*api.Client, error) {
	opts := []client.ClientOpt{}
	if g.Endpoint != "" {
		opts = append(opts, client.OptEndpoint(g.Endpoint))
	}
	if g.Debug || g.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.tracer != nil {
		opts = append(opts, client.OptTracer(g.tracer))
	}
	if g.Timeout > 0 {
		opts = append(opts, client.OptTimeout(g.Timeout))
	}
	return api.New(g.APIKey, opts...)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

// defaultsPath returns the path of the defaults file in the user config
// directory, or in the working directory if there is none
func defaultsPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return defaultsFile
	}
	return filepath.Join(dir, name, defaultsFile)
}
