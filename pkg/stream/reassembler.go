/*
stream decodes the chat stream sent by the AgentX API. The server writes
JSON objects back to back with no framing, and the transport splits them at
arbitrary byte positions, so objects are reassembled by scanning for
balanced braces before they are decoded.
*/
package stream

import (
	"bytes"
	"encoding/json"

	// Packages
	agentx "github.com/mutablelogic/go-agentx"
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Reassembler turns arbitrarily split fragments of a stream of JSON objects
// into chat events. It is not safe for concurrent use: each stream needs
// its own instance.
type Reassembler struct {
	buf      []byte
	pos      int  // next byte to scan
	start    int  // offset of the opening brace of the current object, or -1
	depth    int  // brace depth at pos
	inString bool // pos is inside a string literal
	escaped  bool // previous byte was a backslash inside a string
}

// Result is the outcome of decoding a candidate object
type Result int

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Incomplete means the object has not been closed yet
	Incomplete Result = iota

	// Event means the object decoded to a chat event
	Event

	// Ignored means the object was valid JSON without text, cot or tasks,
	// such as a keepalive
	Ignored

	// Malformed means the object was balanced but not valid JSON
	Malformed
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewReassembler returns an empty reassembler
func NewReassembler() *Reassembler {
	return &Reassembler{start: -1}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Process appends a fragment and returns the events for every object
// completed by it, in order. Objects which are malformed or carry no
// text, cot or tasks are dropped.
func (r *Reassembler) Process(chunk []byte) []schema.ChatEvent {
	var result []schema.ChatEvent

	// Append the fragment
	r.buf = append(r.buf, chunk...)

	// Scan new bytes, trimming after each complete object
	trim := 0
	for ; r.pos < len(r.buf); r.pos++ {
		if !r.scan(r.buf[r.pos]) {
			continue
		}

		// An object has been closed
		evt, res := Decode(r.buf[r.start : r.pos+1])
		if res == Event {
			result = append(result, evt)
		}
		r.start = -1
		trim = r.pos + 1
	}

	// Discard the consumed prefix
	if trim > 0 {
		r.buf = append(r.buf[:0], r.buf[trim:]...)
		r.pos -= trim
		if r.start >= 0 {
			r.start -= trim
		}
	}

	// Return events
	return result
}

// Flush makes a final attempt to decode whatever remains at the end of the
// stream, and resets the reassembler. It returns nil and no error when
// nothing remains, or when the remainder decodes to an object which is not
// a chat event. An ErrIncomplete or ErrMalformed error is diagnostic: the
// remainder has been discarded.
func (r *Reassembler) Flush() (*schema.ChatEvent, error) {
	remainder := bytes.TrimSpace(r.buf)
	depth := r.depth
	r.Reset()

	// Nothing left over
	if len(remainder) == 0 {
		return nil, nil
	}

	evt, res := Decode(remainder)
	if res == Malformed && depth > 0 {
		res = Incomplete
	}
	switch res {
	case Event:
		return &evt, nil
	case Ignored:
		return nil, nil
	case Incomplete:
		return nil, agentx.ErrIncomplete.Withf("discarded %d bytes", len(remainder))
	default:
		return nil, agentx.ErrMalformed.Withf("discarded %d bytes", len(remainder))
	}
}

// Reset discards all buffered content
func (r *Reassembler) Reset() {
	r.buf = nil
	r.pos = 0
	r.start = -1
	r.depth = 0
	r.inString = false
	r.escaped = false
}

// Len returns the number of bytes buffered and not yet decoded
func (r *Reassembler) Len() int {
	return len(r.buf)
}

// Decode decodes a single JSON object into a chat event
func Decode(data []byte) (schema.ChatEvent, Result) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return schema.ChatEvent{}, Malformed
	} else if !schema.IsChatEvent(fields) {
		return schema.ChatEvent{}, Ignored
	}
	return schema.NewChatEvent(fields), Event
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Result) String() string {
	switch r {
	case Incomplete:
		return "incomplete"
	case Event:
		return "event"
	case Ignored:
		return "ignored"
	case Malformed:
		return "malformed"
	}
	return "unknown"
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// scan advances the scanner state over the byte at r.pos, and returns true
// when it closes a top-level object. Braces within string literals are not
// counted, and a closing brace at depth zero is ignored.
func (r *Reassembler) scan(ch byte) bool {
	if r.inString {
		switch {
		case r.escaped:
			r.escaped = false
		case ch == '\\':
			r.escaped = true
		case ch == '"':
			r.inString = false
		}
		return false
	}

	switch ch {
	case '"':
		// Quotes between objects are noise
		if r.depth > 0 {
			r.inString = true
		}
	case '{':
		if r.depth == 0 {
			r.start = r.pos
		}
		r.depth++
	case '}':
		if r.depth > 0 {
			r.depth--
			return r.depth == 0
		}
	}
	return false
}
