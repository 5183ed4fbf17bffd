package main

import (
	"fmt"
	"io"
	"os"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	agentx "github.com/mutablelogic/go-agentx"
	api "github.com/mutablelogic/go-agentx/pkg/agentx"
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	stream "github.com/mutablelogic/go-agentx/pkg/stream"
	markdown "github.com/mutablelogic/go-agentx/pkg/ui/markdown"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ChatCommand struct {
	Text         string `arg:"" help:"Message text"`
	Conversation string `name:"conversation" help:"Conversation ID (overrides the current conversation)" optional:""`
	Context      *int   `name:"context" help:"Number of previous messages the bot takes into account" optional:""`
	NoStream     bool   `name:"no-stream" help:"Wait for the complete reply"`
	Markdown     bool   `name:"markdown" help:"Render the reply as markdown"`
}

// chatPrinter writes a streamed reply as it arrives
type chatPrinter struct {
	w      io.Writer
	buffer bool
	inCot  bool
	acc    stream.Accumulator
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	cotStyle     = lipgloss.NewStyle().Faint(true).Italic(true)
	summaryStyle = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ChatCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ChatCommand",
		attribute.Bool("stream", !cmd.NoStream),
	)
	defer func() { endSpan(err) }()

	// Use the given or current conversation, or start one
	var conversation *api.Conversation
	if cmd.Conversation == "" && ctx.defaults.Conversation() == "" {
		conversation, err = ctx.newConversation(parent, client, "", "")
	} else {
		conversation, err = ctx.conversation(parent, client, cmd.Conversation)
	}
	if err != nil {
		return err
	}

	// Chat options
	opts := []api.ChatOpt{}
	if cmd.Context != nil {
		opts = append(opts, api.WithContextSize(*cmd.Context))
	}

	// Wait for the complete reply
	if cmd.NoStream {
		if conversation.Workforce() != "" {
			return agentx.ErrNotImplemented.With("workforce replies can only be streamed")
		}
		response, err := conversation.Chat(parent, cmd.Text, opts...)
		if err != nil {
			return err
		}
		if ctx.Format != formatTable {
			return ctx.writeOne(response)
		}
		return cmd.print(os.Stdout, response.GetText())
	}

	// Stream the reply. When rendering markdown, or outputting JSON or YAML,
	// the text is printed once the reply is complete.
	printer := &chatPrinter{
		w:      os.Stdout,
		buffer: cmd.Markdown || ctx.Format != formatTable,
	}
	if err := conversation.ChatStream(parent, cmd.Text, printer.Event, opts...); err != nil {
		return err
	}

	// Print
	switch {
	case ctx.Format != formatTable:
		response := schema.ChatResponse{ChatEvent: schema.ChatEvent{BotID: printer.acc.BotID()}}
		if text := printer.acc.Text(); text != "" {
			response.Text = &text
		}
		if cot := printer.acc.Cot(); cot != "" {
			response.Cot = &cot
		}
		return ctx.writeOne(response)
	case cmd.Markdown:
		if err := printer.end(); err != nil {
			return err
		}
		if err := cmd.print(os.Stdout, printer.acc.Text()); err != nil {
			return err
		}
	default:
		if err := printer.end(); err != nil {
			return err
		}
	}

	// Summary
	fmt.Fprintln(os.Stderr, summaryStyle.Render(printer.summary()))
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// print writes the complete reply, as markdown or wrapped plain text
func (cmd *ChatCommand) print(w io.Writer, text string) error {
	if !cmd.Markdown {
		_, err := fmt.Fprintln(w, markdown.Wrap(text, markdown.Width()))
		return err
	}
	r, err := markdown.New(markdown.Style(), 0)
	if err != nil {
		return err
	}
	out, err := r.Render(text)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}

// Event prints the chain of thought dimmed and the text as they arrive
func (p *chatPrinter) Event(evt schema.ChatEvent) error {
	p.acc.Add(evt)
	if p.buffer {
		return nil
	}
	if evt.Cot != nil {
		if _, err := fmt.Fprint(p.w, cotStyle.Render(*evt.Cot)); err != nil {
			return err
		}
		p.inCot = true
	}
	if evt.Text != nil {
		if p.inCot {
			if _, err := fmt.Fprintln(p.w); err != nil {
				return err
			}
			p.inCot = false
		}
		if _, err := fmt.Fprint(p.w, *evt.Text); err != nil {
			return err
		}
	}
	return nil
}

// end terminates the last line of streamed output
func (p *chatPrinter) end() error {
	if p.buffer {
		if cot := p.acc.Cot(); cot != "" {
			_, err := fmt.Fprintln(p.w, cotStyle.Render(cot))
			return err
		}
		return nil
	}
	if p.acc.Text() != "" || p.acc.Cot() != "" {
		_, err := fmt.Fprintln(p.w)
		return err
	}
	return nil
}

func (p *chatPrinter) summary() string {
	return fmt.Sprintf("%d events, %d characters of text, %d characters of thought",
		p.acc.Events(), len([]rune(p.acc.Text())), len([]rune(p.acc.Cot())))
}
