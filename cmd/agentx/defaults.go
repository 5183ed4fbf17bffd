package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Defaults remembers the current agent, workforce and conversation between
// invocations, in a JSON file on disk
type Defaults struct {
	mu   sync.RWMutex
	path string
	data defaultsData
}

type defaultsData struct {
	Agent        string `json:"agent,omitempty"`
	Workforce    string `json:"workforce,omitempty"`
	Conversation string `json:"conversation,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewDefaults loads the defaults at the given path. A missing file is an
// empty set of defaults.
func NewDefaults(path string) (*Defaults, error) {
	d := &Defaults{path: path}

	// Load existing file (ignore if it doesn't exist)
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&d.data); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	return d, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Agent returns the current agent
func (d *Defaults) Agent() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.data.Agent
}

// Workforce returns the current workforce
func (d *Defaults) Workforce() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.data.Workforce
}

// Conversation returns the current conversation
func (d *Defaults) Conversation() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.data.Conversation
}

// SetAgent makes an agent current, which clears the current workforce
// and conversation
func (d *Defaults) SetAgent(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.data.Agent != id || d.data.Workforce != "" {
		d.data = defaultsData{Agent: id}
	}
	return d.save()
}

// SetWorkforce makes a workforce current, which clears the current
// conversation
func (d *Defaults) SetWorkforce(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.data.Workforce != id {
		d.data = defaultsData{Agent: d.data.Agent, Workforce: id}
	}
	return d.save()
}

// SetConversation makes a conversation current, held with either an agent
// or a workforce
func (d *Defaults) SetConversation(agent, workforce, conversation string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data = defaultsData{
		Agent:        agent,
		Workforce:    workforce,
		Conversation: conversation,
	}
	return d.save()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// save writes the defaults to disk, creating parent directories as needed
func (d *Defaults) save() error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(d.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(d.path, data, 0600)
}
