/*
agentx implements an API client for the AgentX platform
https://www.agentx.so
*/
package agentx

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	// Packages
	agentx "github.com/mutablelogic/go-agentx"
	agentcache "github.com/mutablelogic/go-agentx/pkg/agentcache"
	version "github.com/mutablelogic/go-agentx/pkg/version"
	client "github.com/mutablelogic/go-client"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	cache *agentcache.AgentCache
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// EnvAPIKey is the environment variable read when no API key is passed
	EnvAPIKey = "AGENTX_API_KEY"

	endPoint  = "https://api.agentx.so/api/v1/access"
	apiHeader = "x-api-key"
	cacheTTL  = time.Minute
	cacheCap  = 50
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new client. If the API key is empty it is read from the
// AGENTX_API_KEY environment variable. Options are applied after the
// defaults, so client.OptEndpoint can be used to change the endpoint.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return nil, agentx.ErrBadParameter.Withf("API key is required, set %s or pass an API key", EnvAPIKey)
	}

	// Create client
	defaults := []client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptUserAgent(version.UserAgent()),
		client.OptHeader(apiHeader, apiKey),
	}
	c, err := client.New(append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client: c,
		cache:  agentcache.New(cacheTTL, cacheCap),
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// notFound marks a 404 response from the server as agentx.ErrNotFound,
// keeping the original error in the chain
func notFound(err error, what string) error {
	if statusCode(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %s: %w", agentx.ErrNotFound, what, err)
	}
	return err
}

// statusCode returns the HTTP status of an error response, or zero. A
// response with a JSON error body is returned as an ErrResponse, otherwise
// as an Err.
func statusCode(err error) int {
	var httpErr httpresponse.Err
	var errResponse httpresponse.ErrResponse
	var errResponsePtr *httpresponse.ErrResponse
	switch {
	case errors.As(err, &errResponse):
		return errResponse.Code
	case errors.As(err, &errResponsePtr) && errResponsePtr != nil:
		return errResponsePtr.Code
	case errors.As(err, &httpErr):
		return int(httpErr)
	}
	return 0
}
