package schema

import (
	"encoding/json"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Profile is the account the API key belongs to. Fields the server returns
// beyond those of a User are kept and available through Get.
type Profile struct {
	User
	raw map[string]any
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Get returns a top-level field of the profile as sent by the server,
// or nil if it was not present
func (p Profile) Get(key string) any {
	return p.raw[key]
}

// Keys returns the top-level field names sent by the server
func (p Profile) Keys() []string {
	keys := make([]string, 0, len(p.raw))
	for key := range p.raw {
		keys = append(keys, key)
	}
	return keys
}

///////////////////////////////////////////////////////////////////////////////
// MARSHAL

func (p *Profile) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &p.User); err != nil {
		return err
	}
	return json.Unmarshal(data, &p.raw)
}

func (p Profile) MarshalJSON() ([]byte, error) {
	if p.raw != nil {
		return json.Marshal(p.raw)
	}
	return json.Marshal(p.User)
}

// MarshalYAML outputs the profile as sent by the server
func (p Profile) MarshalYAML() (any, error) {
	if p.raw != nil {
		return p.raw, nil
	}
	return p.User, nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (p Profile) String() string {
	return types.Stringify(p)
}
