package schema

import (
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// User is a platform account
type User struct {
	ID               string     `json:"_id" yaml:"id"`
	Name             string     `json:"name" yaml:"name"`
	Email            string     `json:"email,omitempty" yaml:"email,omitempty"`
	Deleted          bool       `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Avatar           string     `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Status           int        `json:"status,omitempty" yaml:"status,omitempty"`
	Customer         string     `json:"customer,omitempty" yaml:"customer,omitempty"`
	ResetPwdToken    string     `json:"resetPwdToken,omitempty" yaml:"-"`
	DefaultWorkspace string     `json:"defaultWorkspace,omitempty" yaml:"default_workspace,omitempty"`
	Workspaces       []string   `json:"workspaces,omitempty" yaml:"workspaces,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
}

// Workforce is a team of agents coordinated by a manager agent
type Workforce struct {
	ID          string     `json:"_id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Image       string     `json:"image,omitempty" yaml:"image,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Agents      []Agent    `json:"agents" yaml:"agents"`
	Manager     Agent      `json:"manager" yaml:"manager"`
	Creator     User       `json:"creator" yaml:"creator"`
	Context     int        `json:"context" yaml:"context"`
	References  bool       `json:"references" yaml:"references"`
	Workspace   string     `json:"workspace,omitempty" yaml:"workspace,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (u User) String() string {
	return types.Stringify(u)
}

func (w Workforce) String() string {
	return types.Stringify(w)
}
