package stream

import (
	"strings"
	"sync"

	// Packages
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Accumulator keeps running totals of the text and chain of thought
// received over a stream. It is safe to add events from one goroutine
// while reading the totals from another.
type Accumulator struct {
	mu     sync.Mutex
	text   strings.Builder
	cot    strings.Builder
	botID  string
	events int
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Add appends the event to the totals
func (a *Accumulator) Add(evt schema.ChatEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.events++
	if evt.Text != nil {
		a.text.WriteString(*evt.Text)
	}
	if evt.Cot != nil {
		a.cot.WriteString(*evt.Cot)
	}
	if evt.BotID != "" {
		a.botID = evt.BotID
	}
}

// EventFn returns a function which adds each event before passing it on
// to fn, which may be nil
func (a *Accumulator) EventFn(fn EventFn) EventFn {
	return func(evt schema.ChatEvent) error {
		a.Add(evt)
		if fn != nil {
			return fn(evt)
		}
		return nil
	}
}

// Text returns the concatenated text
func (a *Accumulator) Text() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.text.String()
}

// Cot returns the concatenated chain of thought
func (a *Accumulator) Cot() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cot.String()
}

// BotID returns the last bot identifier seen
func (a *Accumulator) BotID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.botID
}

// Events returns the number of events added
func (a *Accumulator) Events() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.events
}
