package agentx

import (
	"log/slog"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ChatOpt is a functional option for sending a message
type ChatOpt func(*chatOptions)

type chatOptions struct {
	context  *int
	logger   *slog.Logger
	readSize int
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithContextSize sets the number of previous messages in the conversation
// the bot takes into account when replying. A negative value is passed
// to the server as-is.
func WithContextSize(n int) ChatOpt {
	return func(o *chatOptions) {
		o.context = types.Ptr(n)
	}
}

// WithStreamLogger sets the logger used to report content which could not
// be decoded at the end of a stream. The default is slog.Default().
func WithStreamLogger(logger *slog.Logger) ChatOpt {
	return func(o *chatOptions) {
		o.logger = logger
	}
}

// WithReadSize sets the size of each read from a streamed response
func WithReadSize(n int) ChatOpt {
	return func(o *chatOptions) {
		o.readSize = n
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func applyChatOpts(opts []ChatOpt) chatOptions {
	var o chatOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
