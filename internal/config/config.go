// Package config resolves the Bitbucket Data Center connection settings
// from environment variables into an immutable value.
package config

import (
	"errors"
	"os"
	"strings"
)

// Environment variables:
//
//	BITBUCKET_HOST      domain + optional port (e.g. "git.company.se:7990")
//	BITBUCKET_URL       full base URL alternative (e.g. "https://git.company.se")
//	BITBUCKET_API_TOKEN personal access token used as a bearer token
var (
	ErrMissingCredential   = errors.New("BITBUCKET_API_TOKEN environment variable is required")
	ErrMissingEndpoint     = errors.New("either BITBUCKET_URL or BITBUCKET_HOST environment variable is required")
	ErrConflictingEndpoint = errors.New("BITBUCKET_HOST and BITBUCKET_URL are mutually exclusive, set only one")
)

// Config is resolved once at startup and passed to every component.
type Config struct {
	BaseURL  string
	APIToken string
}

// FromEnv builds a Config from the environment. An empty variable counts
// as unset.
func FromEnv() (Config, error) {
	token := os.Getenv("BITBUCKET_API_TOKEN")
	if token == "" {
		return Config{}, ErrMissingCredential
	}

	host := os.Getenv("BITBUCKET_HOST")
	rawURL := os.Getenv("BITBUCKET_URL")

	var baseURL string
	switch {
	case host == "" && rawURL == "":
		return Config{}, ErrMissingEndpoint
	case host != "" && rawURL != "":
		return Config{}, ErrConflictingEndpoint
	case host != "":
		// Strip a scheme accidentally included in the host value.
		host = strings.TrimPrefix(host, "https://")
		host = strings.TrimPrefix(host, "http://")
		baseURL = "https://" + host
	default:
		baseURL = rawURL
	}

	// One trailing slash or none, both produce the same base.
	baseURL = strings.TrimRight(baseURL, "/")

	return Config{BaseURL: baseURL, APIToken: token}, nil
}

// RestAPIURL is the base for Bitbucket REST API endpoints.
func (c Config) RestAPIURL() string {
	return c.BaseURL + "/rest/api/latest"
}

// SearchAPIURL is the base for Bitbucket Search API endpoints.
func (c Config) SearchAPIURL() string {
	return c.BaseURL + "/rest/search/latest"
}
