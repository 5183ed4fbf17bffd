package stream_test

import (
	"strings"
	"testing"

	// Packages
	stream "github.com/mutablelogic/go-agentx/pkg/stream"
	assert "github.com/stretchr/testify/assert"
)

func Test_response_001(t *testing.T) {
	assert := assert.New(t)

	// Events are joined into one reply
	r := stream.DecodeResponse([]byte(`{"cot":"a"}{"text":"Hel","botId":"b1"} {}{"text":"lo","tasks":[1],"cot":"b"}`))
	assert.Equal("Hello", r.GetText())
	assert.Equal("ab", r.GetCot())
	assert.Equal("b1", r.BotID)
	assert.JSONEq(`[1]`, string(r.Tasks))
}

func Test_response_002(t *testing.T) {
	assert := assert.New(t)

	// Bodies without events fall back to the body itself
	assert.Equal("Hello {there}", stream.DecodeResponse([]byte(" Hello {there}\n")).GetText())
	assert.Equal("ok", stream.DecodeResponse([]byte(`"ok"`)).GetText())
	assert.Nil(stream.DecodeResponse([]byte(`{"status":"ok"}`)).Text)
	assert.Nil(stream.DecodeResponse(nil).Text)
}

func Test_response_003(t *testing.T) {
	assert := assert.New(t)

	var r stream.Response
	assert.NoError(r.Unmarshal(nil, strings.NewReader("plain reply")))
	assert.Equal("plain reply", r.GetText())
	assert.Equal("plain reply", string(r.Raw()))
}
