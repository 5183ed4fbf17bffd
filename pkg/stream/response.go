package stream

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	// Packages
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Response decodes the complete reply to a non-streamed message, whatever
// its content type. It can be passed as the response to go-client.
type Response struct {
	schema.ChatResponse
}

var _ client.Unmarshaler = (*Response)(nil)

///////////////////////////////////////////////////////////////////////////////
// UNMARSHALER

// Unmarshal reads the whole body and decodes it with DecodeResponse
func (r *Response) Unmarshal(_ http.Header, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	r.ChatResponse = DecodeResponse(data)
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// DecodeResponse joins the chat events in a reply body into one response,
// which keeps the body as sent. When the body holds no chat events, a JSON
// string or plain text body becomes the text of the response.
func DecodeResponse(data []byte) schema.ChatResponse {
	var result schema.ChatEvent
	var text, cot strings.Builder
	var events int

	add := func(evt schema.ChatEvent) {
		events++
		text.WriteString(evt.GetText())
		cot.WriteString(evt.GetCot())
		if evt.BotID != "" {
			result.BotID = evt.BotID
		}
		if evt.Reference != nil {
			result.Reference = evt.Reference
		}
		if evt.Tasks != nil {
			result.Tasks = evt.Tasks
		}
	}

	// Decode objects back to back, as for a stream
	r := NewReassembler()
	for _, evt := range r.Process(data) {
		add(evt)
	}
	if evt, _ := r.Flush(); evt != nil {
		add(*evt)
	}

	// Fall back to the body itself
	if events == 0 {
		trimmed := bytes.TrimSpace(data)
		var s string
		switch {
		case json.Unmarshal(trimmed, &s) == nil:
			text.WriteString(s)
		case !json.Valid(trimmed):
			text.Write(trimmed)
		}
	}

	if text.Len() > 0 {
		result.Text = types.Ptr(text.String())
	}
	if cot.Len() > 0 {
		result.Cot = types.Ptr(cot.String())
	}
	return schema.NewChatResponse(result, data)
}
