package schema

import (
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Agent is a single bot configured on the platform.
type Agent struct {
	ID        string     `json:"_id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Avatar    string     `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (a Agent) String() string {
	return types.Stringify(a)
}
