package config

import (
	"errors"
	"testing"
)

func setEnv(t *testing.T, host, url, token string) {
	t.Helper()
	t.Setenv("BITBUCKET_HOST", host)
	t.Setenv("BITBUCKET_URL", url)
	t.Setenv("BITBUCKET_API_TOKEN", token)
}

func TestFromEnv_HostOnly(t *testing.T) {
	setEnv(t, "git.example.com", "", "my-token")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.BaseURL != "https://git.example.com" {
		t.Errorf("BaseURL: %s, want https://git.example.com", cfg.BaseURL)
	}
	if cfg.APIToken != "my-token" {
		t.Errorf("APIToken: %s, want my-token", cfg.APIToken)
	}
	if cfg.RestAPIURL() != "https://git.example.com/rest/api/latest" {
		t.Errorf("RestAPIURL: %s", cfg.RestAPIURL())
	}
	if cfg.SearchAPIURL() != "https://git.example.com/rest/search/latest" {
		t.Errorf("SearchAPIURL: %s", cfg.SearchAPIURL())
	}
}

func TestFromEnv_URLOnly(t *testing.T) {
	setEnv(t, "", "https://git.example.com", "my-token")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.BaseURL != "https://git.example.com" {
		t.Errorf("BaseURL: %s, want https://git.example.com", cfg.BaseURL)
	}
}

// Host-only and an equivalent URL must resolve to the same base.
func TestFromEnv_NormalizationEquivalence(t *testing.T) {
	setEnv(t, "git.example.com:7990", "", "my-token")
	fromHost, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv with host failed: %v", err)
	}

	setEnv(t, "", "https://git.example.com:7990", "my-token")
	fromURL, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv with url failed: %v", err)
	}

	if fromHost.BaseURL != fromURL.BaseURL {
		t.Errorf("host form %q != url form %q", fromHost.BaseURL, fromURL.BaseURL)
	}
}

func TestFromEnv_TrailingSlashIdempotent(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "no slash", url: "https://git.example.com"},
		{name: "one slash", url: "https://git.example.com/"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			setEnv(t, "", test.url, "my-token")
			cfg, err := FromEnv()
			if err != nil {
				t.Fatalf("FromEnv failed: %v", err)
			}
			if cfg.BaseURL != "https://git.example.com" {
				t.Errorf("BaseURL: %s, want https://git.example.com", cfg.BaseURL)
			}
		})
	}
}

func TestFromEnv_StripsSchemeFromHost(t *testing.T) {
	setEnv(t, "https://git.example.com", "", "my-token")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.BaseURL != "https://git.example.com" {
		t.Errorf("BaseURL: %s, want https://git.example.com", cfg.BaseURL)
	}
}

func TestFromEnv_MissingToken(t *testing.T) {
	// Token absent even though both endpoint vars are also absent: the
	// credential error is the one reported.
	setEnv(t, "", "", "")

	_, err := FromEnv()
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("error: %v, want ErrMissingCredential", err)
	}
}

func TestFromEnv_MissingEndpoint(t *testing.T) {
	setEnv(t, "", "", "my-token")

	_, err := FromEnv()
	if !errors.Is(err, ErrMissingEndpoint) {
		t.Errorf("error: %v, want ErrMissingEndpoint", err)
	}
}

func TestFromEnv_ConflictingEndpoint(t *testing.T) {
	// Both set is an error even when the values are equivalent.
	setEnv(t, "git.example.com", "https://git.example.com", "my-token")

	_, err := FromEnv()
	if !errors.Is(err, ErrConflictingEndpoint) {
		t.Errorf("error: %v, want ErrConflictingEndpoint", err)
	}
}
