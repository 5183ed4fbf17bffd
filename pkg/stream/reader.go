package stream

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	// Packages
	agentx "github.com/mutablelogic/go-agentx"
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// EventFn is called for each chat event as it arrives. Returning an error
// stops reading the stream.
type EventFn func(schema.ChatEvent) error

// ReaderOpt configures a Reader
type ReaderOpt func(*Reader)

// Reader decodes a chat stream response body, calling a function for each
// event. It can be passed as the response to go-client.
type Reader struct {
	fn     EventFn
	size   int
	logger *slog.Logger
	count  int
}

var _ client.Unmarshaler = (*Reader)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultReadSize = 4 * 1024
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewReader returns a reader which calls fn for every event in the stream
func NewReader(fn EventFn, opts ...ReaderOpt) *Reader {
	r := &Reader{
		fn:     fn,
		size:   defaultReadSize,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithReadSize sets the size of each read from the response body
func WithReadSize(size int) ReaderOpt {
	return func(r *Reader) {
		if size > 0 {
			r.size = size
		}
	}
}

// WithLogger sets the logger used to report content discarded at the
// end of the stream
func WithLogger(logger *slog.Logger) ReaderOpt {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Count returns the number of events delivered
func (r *Reader) Count() int {
	return r.count
}

// Read consumes the stream until EOF, an error reading from it, or an
// error returned by the event function
func (r *Reader) Read(body io.Reader) error {
	reassembler := NewReassembler()
	defer reassembler.Reset()

	buf := make([]byte, r.size)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			for _, evt := range reassembler.Process(buf[:n]) {
				if err := r.emit(evt); err != nil {
					return err
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return err
		}
	}

	// Anything left over is either one more event or discarded
	evt, err := reassembler.Flush()
	if errors.Is(err, agentx.ErrIncomplete) || errors.Is(err, agentx.ErrMalformed) {
		r.logger.Warn("chat stream ended with undecodable content", "error", err)
	} else if err != nil {
		return err
	} else if evt != nil {
		return r.emit(*evt)
	}

	// Return success
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// UNMARSHALER

// Unmarshal reads the response body regardless of content type
func (r *Reader) Unmarshal(_ http.Header, body io.Reader) error {
	return r.Read(body)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (r *Reader) emit(evt schema.ChatEvent) error {
	r.count++
	if r.fn == nil {
		return nil
	}
	return r.fn(evt)
}
