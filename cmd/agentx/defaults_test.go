package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func Test_defaults_001(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "agentx", defaultsFile)

	d, err := NewDefaults(path)
	require.NoError(t, err)
	assert.Empty(d.Agent())

	// Conversations are remembered with their agent or workforce
	require.NoError(t, d.SetConversation("a1", "", "c1"))
	require.NoError(t, d.SetWorkforce("w1"))
	assert.Equal("a1", d.Agent())
	assert.Equal("w1", d.Workforce())
	assert.Empty(d.Conversation())

	// Changing agent clears the rest
	require.NoError(t, d.SetConversation("m1", "w1", "c2"))
	require.NoError(t, d.SetAgent("a2"))
	assert.Equal("a2", d.Agent())
	assert.Empty(d.Workforce())
	assert.Empty(d.Conversation())

	// Defaults persist
	require.NoError(t, d.SetConversation("a2", "", "c3"))
	d, err = NewDefaults(path)
	require.NoError(t, err)
	assert.Equal("a2", d.Agent())
	assert.Equal("c3", d.Conversation())
}

func Test_chat_001(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	p := &chatPrinter{w: &buf}
	assert.NoError(p.Event(schema.ChatEvent{Cot: types.Ptr("thinking")}))
	assert.NoError(p.Event(schema.ChatEvent{Text: types.Ptr("Hello")}))
	assert.NoError(p.Event(schema.ChatEvent{Text: types.Ptr(", world")}))
	assert.NoError(p.end())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if assert.Len(lines, 2) {
		assert.Contains(lines[0], "thinking")
		assert.Equal("Hello, world", lines[1])
	}
	assert.Equal("3 events, 12 characters of text, 8 characters of thought", p.summary())
}

func Test_chat_002(t *testing.T) {
	assert := assert.New(t)

	// Buffered replies print only the chain of thought at the end
	var buf bytes.Buffer
	p := &chatPrinter{w: &buf, buffer: true}
	assert.NoError(p.Event(schema.ChatEvent{Text: types.Ptr("# Title")}))
	assert.Empty(buf.String())
	assert.NoError(p.end())
	assert.Empty(buf.String())
	assert.Equal("# Title", p.acc.Text())
}
