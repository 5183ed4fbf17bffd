package stream_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/iotest"

	// Packages
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	stream "github.com/mutablelogic/go-agentx/pkg/stream"
	assert "github.com/stretchr/testify/assert"
)

const (
	testStream = `{"cot":"Looking up"}{"text":"Hello","botId":"b1"}{}{"text":", world","botId":"b1","reference":[]}`
)

func Test_reader_001(t *testing.T) {
	assert := assert.New(t)

	var events []schema.ChatEvent
	r := stream.NewReader(func(evt schema.ChatEvent) error {
		events = append(events, evt)
		return nil
	}, stream.WithReadSize(3))
	assert.NoError(r.Read(strings.NewReader(testStream)))
	assert.Equal(3, r.Count())
	assert.Equal([]string{"", "Hello", ", world"}, texts(events))
}

func Test_reader_002(t *testing.T) {
	assert := assert.New(t)

	var acc stream.Accumulator
	r := stream.NewReader(acc.EventFn(nil))
	assert.NoError(r.Unmarshal(nil, iotest.OneByteReader(strings.NewReader(testStream))))
	assert.Equal("Hello, world", acc.Text())
	assert.Equal("Looking up", acc.Cot())
	assert.Equal("b1", acc.BotID())
	assert.Equal(3, acc.Events())
}

func Test_reader_003(t *testing.T) {
	assert := assert.New(t)

	// Content left at the end is logged, not returned
	var log bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&log, nil))
	r := stream.NewReader(nil, stream.WithLogger(logger))
	assert.NoError(r.Read(strings.NewReader(`{"text":"a"}{"text":`)))
	assert.Equal(1, r.Count())
	assert.Contains(log.String(), "level=WARN")
	assert.Contains(log.String(), "incomplete")
}

func Test_reader_004(t *testing.T) {
	assert := assert.New(t)

	// An error from the event function stops the stream
	errStop := errors.New("stop")
	calls := 0
	r := stream.NewReader(func(schema.ChatEvent) error {
		calls++
		return errStop
	})
	assert.ErrorIs(r.Read(strings.NewReader(testStream)), errStop)
	assert.Equal(1, calls)
}

func Test_reader_005(t *testing.T) {
	assert := assert.New(t)

	// A read error is returned after delivering what was complete
	errRead := errors.New("connection reset")
	var acc stream.Accumulator
	r := stream.NewReader(acc.EventFn(nil))
	body := io.MultiReader(strings.NewReader(`{"text":"partial"}{"text":"lost"`), iotest.ErrReader(errRead))
	assert.ErrorIs(r.Read(body), errRead)
	assert.Equal("partial", acc.Text())
	assert.Equal(1, r.Count())
}

func Test_accumulator_001(t *testing.T) {
	assert := assert.New(t)

	var acc stream.Accumulator
	text := "a"
	acc.Add(schema.ChatEvent{Text: &text, BotID: "b1"})
	acc.Add(schema.ChatEvent{})
	assert.Equal("a", acc.Text())
	assert.Empty(acc.Cot())
	assert.Equal("b1", acc.BotID())
	assert.Equal(2, acc.Events())

	// Events are passed through
	var seen int
	fn := acc.EventFn(func(schema.ChatEvent) error {
		seen++
		return nil
	})
	assert.NoError(fn(schema.ChatEvent{Text: &text}))
	assert.Equal(1, seen)
	assert.Equal("aa", acc.Text())
}
