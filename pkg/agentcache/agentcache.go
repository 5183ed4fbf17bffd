/*
agentcache keeps agents fetched from the API for a limited time, so that
resolving an agent by identifier does not need a round trip each time.
*/
package agentcache

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	// Packages
	agentx "github.com/mutablelogic/go-agentx"
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type agentts struct {
	ts    time.Time
	agent schema.Agent
}

// AgentCache is safe for concurrent use. A zero TTL disables caching.
type AgentCache struct {
	mu     sync.Mutex
	ttl    time.Duration
	listed time.Time // when the complete list was last fetched
	agent  map[string]agentts
}

type GetAgentFunc func(context.Context, string) (*schema.Agent, error)
type ListAgentsFunc func(context.Context) ([]schema.Agent, error)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func New(ttl time.Duration, cap int) *AgentCache {
	self := new(AgentCache)

	// Set the TTL for each agent
	if ttl > 0 {
		self.ttl = ttl
	}

	// Set agent cache capacity
	self.agent = make(map[string]agentts, cap)

	// Return the agent cache
	return self
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetAgent returns a cached agent, or calls fn to fetch it
func (ac *AgentCache) GetAgent(ctx context.Context, id string, fn GetAgentFunc) (*schema.Agent, error) {
	ac.mu.Lock()
	if entry, ok := ac.agent[id]; ok {
		if time.Since(entry.ts) < ac.ttl {
			ac.mu.Unlock()
			return types.Ptr(entry.agent), nil
		}
		// Expired entry: prune before fetching
		delete(ac.agent, id)
	}
	ac.mu.Unlock()

	// Fetch agent
	agent, err := fn(ctx, id)
	if err != nil {
		// If agent no longer exists, ensure cache is invalidated
		if errors.Is(err, agentx.ErrNotFound) {
			ac.Invalidate(id)
		}
		return nil, err
	}

	// Cache agent
	if ac.ttl > 0 {
		ac.mu.Lock()
		ac.agent[agent.ID] = agentts{ts: time.Now(), agent: types.Value(agent)}
		ac.mu.Unlock()
	}

	// Return agent
	return agent, nil
}

// ListAgents returns the cached agents if the complete list was fetched
// within the TTL, or calls fn to fetch them. Agents are sorted by name.
func (ac *AgentCache) ListAgents(ctx context.Context, fn ListAgentsFunc) ([]schema.Agent, error) {
	ac.mu.Lock()
	if ac.ttl > 0 && time.Since(ac.listed) < ac.ttl {
		now := time.Now()
		cached := make([]schema.Agent, 0, len(ac.agent))
		for id, entry := range ac.agent {
			if now.Sub(entry.ts) < ac.ttl {
				cached = append(cached, entry.agent)
			} else {
				// Prune expired entries
				delete(ac.agent, id)
			}
		}
		ac.mu.Unlock()
		sortAgents(cached)
		return cached, nil
	}
	ac.mu.Unlock()

	// Fetch agents
	agents, err := fn(ctx)
	if err != nil {
		return nil, err
	}

	// Replace the cache
	if ac.ttl > 0 {
		ac.mu.Lock()
		now := time.Now()
		clear(ac.agent)
		for _, agent := range agents {
			ac.agent[agent.ID] = agentts{ts: now, agent: agent}
		}
		ac.listed = now
		ac.mu.Unlock()
	}

	// Return sorted list of agents
	sortAgents(agents)
	return agents, nil
}

// Invalidate removes agents from the cache, or all agents if no
// identifiers are given
func (ac *AgentCache) Invalidate(id ...string) {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	ac.listed = time.Time{}
	if len(id) == 0 {
		clear(ac.agent)
	}
	for _, id := range id {
		delete(ac.agent, id)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func sortAgents(agents []schema.Agent) {
	sort.SliceStable(agents, func(i, j int) bool {
		if agents[i].Name == agents[j].Name {
			return agents[i].ID < agents[j].ID
		}
		return agents[i].Name < agents[j].Name
	})
}
