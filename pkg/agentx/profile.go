package agentx

import (
	"context"

	// Packages
	schema "github.com/mutablelogic/go-agentx/pkg/schema"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// CLIENT METHODS

// GetProfile returns the account which owns the API key
func (c *Client) GetProfile(ctx context.Context) (*schema.Profile, error) {
	var response schema.Profile
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("getProfile")); err != nil {
		return nil, err
	}
	return &response, nil
}
