package stream_test

import (
	"encoding/json"
	"testing"

	// Packages
	agentx "github.com/mutablelogic/go-agentx"
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	stream "github.com/mutablelogic/go-agentx/pkg/stream"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// HELPERS

// feed passes each fragment to a new reassembler, then flushes it
func feed(t *testing.T, fragments ...string) []schema.ChatEvent {
	t.Helper()
	var result []schema.ChatEvent
	r := stream.NewReassembler()
	for _, fragment := range fragments {
		result = append(result, r.Process([]byte(fragment))...)
	}
	if evt, err := r.Flush(); err != nil {
		t.Log("flush:", err)
	} else if evt != nil {
		result = append(result, *evt)
	}
	assert.Zero(t, r.Len())
	return result
}

func texts(events []schema.ChatEvent) []string {
	result := make([]string, 0, len(events))
	for _, evt := range events {
		result = append(result, evt.GetText())
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_reassembler_001(t *testing.T) {
	assert := assert.New(t)

	r := stream.NewReassembler()
	events := r.Process([]byte(`{"text":"hi","botId":"b1"}`))
	if assert.Len(events, 1) {
		evt := events[0]
		if assert.NotNil(evt.Text) {
			assert.Equal("hi", *evt.Text)
		}
		assert.Nil(evt.Cot)
		assert.Equal("b1", evt.BotID)
		assert.Nil(evt.Reference)
		assert.Nil(evt.Tasks)
	}
	assert.Zero(r.Len())
}

func Test_reassembler_002(t *testing.T) {
	assert := assert.New(t)

	r := stream.NewReassembler()
	first := r.Process([]byte(`{"text":"a"}`))
	second := r.Process([]byte(`{"text":"b","botId":"b1"}`))
	assert.Equal([]string{"a"}, texts(first))
	assert.Equal([]string{"b"}, texts(second))
	assert.Equal("b1", second[0].BotID)
}

func Test_reassembler_003(t *testing.T) {
	assert := assert.New(t)

	r := stream.NewReassembler()
	assert.Empty(r.Process([]byte(`{"te`)))
	assert.NotZero(r.Len())
	events := r.Process([]byte(`xt":"x","botId":"b1"}`))
	assert.Equal([]string{"x"}, texts(events))
	assert.Zero(r.Len())
}

func Test_reassembler_004(t *testing.T) {
	assert := assert.New(t)

	r := stream.NewReassembler()
	assert.Empty(r.Process([]byte(`{}`)))
	assert.Empty(r.Process([]byte(`{"botId":"b1","reference":[1,2]}`)))
	evt, err := r.Flush()
	assert.NoError(err)
	assert.Nil(evt)
}

func Test_reassembler_005(t *testing.T) {
	assert := assert.New(t)

	r := stream.NewReassembler()
	assert.Empty(r.Process([]byte(`{"text":`)))
	evt, err := r.Flush()
	assert.Nil(evt)
	assert.ErrorIs(err, agentx.ErrIncomplete)
	assert.Zero(r.Len())

	// The reassembler can be reused after a flush
	assert.Equal([]string{"again"}, texts(r.Process([]byte(`{"text":"again"}`))))
}

func Test_reassembler_006(t *testing.T) {
	assert := assert.New(t)

	// Several objects in one fragment, with whitespace between them
	events := feed(t, "{\"text\":\"a\"}\n{\"cot\":\"thinking\"} {\"text\":\"c\"}\r\n")
	if assert.Len(events, 3) {
		assert.Equal("a", events[0].GetText())
		assert.Nil(events[1].Text)
		assert.Equal("thinking", events[1].GetCot())
		assert.Equal("c", events[2].GetText())
	}
}

func Test_reassembler_007(t *testing.T) {
	assert := assert.New(t)

	// Braces and escaped quotes inside strings
	input := `{"text":"a } b { c","botId":"b1"}{"text":"say \"}\" twice","cot":"{"}`
	for i := 0; i <= len(input); i++ {
		events := feed(t, input[:i], input[i:])
		if assert.Len(events, 2, "split at %d", i) {
			assert.Equal("a } b { c", events[0].GetText())
			assert.Equal(`say "}" twice`, events[1].GetText())
			assert.Equal("{", events[1].GetCot())
		}
	}
}

func Test_reassembler_008(t *testing.T) {
	assert := assert.New(t)

	input := `{"text":"one","botId":"b1"}{}{"cot":"two","tasks":[{"id":1}]}` +
		`{"text":null,"tasks":null}{"text":"three","reference":{"url":"https://example.com/{x}"}}`
	expected := feed(t, input)
	assert.Len(expected, 4)

	// Every two-way split gives the same events
	for i := 0; i <= len(input); i++ {
		assert.Equal(expected, feed(t, input[:i], input[i:]), "split at %d", i)
	}

	// As does one byte at a time
	fragments := make([]string, len(input))
	for i := range input {
		fragments[i] = input[i : i+1]
	}
	assert.Equal(expected, feed(t, fragments...))

	// And irregular fragments
	var irregular []string
	for i, n := 0, 1; i < len(input); n = n%7 + 2 {
		end := min(i+n, len(input))
		irregular = append(irregular, input[i:end])
		i = end
	}
	assert.Equal(expected, feed(t, irregular...))
}

func Test_reassembler_009(t *testing.T) {
	assert := assert.New(t)

	// Tasks and reference are passed through verbatim, null included
	events := feed(t, `{"text":null,"tasks":null}`, `{"cot":"x","tasks":[1],"reference":{"a":"b"}}`)
	if assert.Len(events, 2) {
		assert.Nil(events[0].Text)
		assert.Equal(json.RawMessage("null"), events[0].Tasks)
		assert.JSONEq(`[1]`, string(events[1].Tasks))
		assert.JSONEq(`{"a":"b"}`, string(events[1].Reference))
	}
}

func Test_reassembler_010(t *testing.T) {
	assert := assert.New(t)

	// Malformed objects are dropped and do not block later ones
	r := stream.NewReassembler()
	assert.Empty(r.Process([]byte(`{"text":"bad",}`)))
	assert.Empty(r.Process([]byte(`{oops}{"text":`)))
	assert.Equal([]string{"good"}, texts(r.Process([]byte(`"good"}`))))
	assert.Zero(r.Len())
}

func Test_reassembler_011(t *testing.T) {
	assert := assert.New(t)

	// Stray closing braces and quotes between objects are ignored
	events := feed(t, `}" {"text":"a"} }} {"text":"b"}`)
	assert.Equal([]string{"a", "b"}, texts(events))
}

func Test_reassembler_012(t *testing.T) {
	assert := assert.New(t)

	// Unparsable content with no braces is discarded at flush
	r := stream.NewReassembler()
	assert.Empty(r.Process([]byte(`data: keepalive`)))
	evt, err := r.Flush()
	assert.Nil(evt)
	assert.ErrorIs(err, agentx.ErrMalformed)

	// Whitespace only is not a diagnostic
	assert.Empty(r.Process([]byte("  \n")))
	evt, err = r.Flush()
	assert.Nil(evt)
	assert.NoError(err)
}

func Test_reassembler_013(t *testing.T) {
	assert := assert.New(t)

	// Multi-byte characters split across fragments
	input := `{"text":"héllo wörld ✓"}`
	for i := 0; i <= len(input); i++ {
		assert.Equal([]string{"héllo wörld ✓"}, texts(feed(t, input[:i], input[i:])))
	}
}

func Test_decode_001(t *testing.T) {
	assert := assert.New(t)

	_, res := stream.Decode([]byte(`{"text":"a"}`))
	assert.Equal(stream.Event, res)
	_, res = stream.Decode([]byte(`{"other":"a"}`))
	assert.Equal(stream.Ignored, res)
	_, res = stream.Decode([]byte(`{"text":`))
	assert.Equal(stream.Malformed, res)
	assert.Equal("incomplete", stream.Incomplete.String())
	assert.Equal("malformed", stream.Malformed.String())
}
