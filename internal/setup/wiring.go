package setup

import (
	"fmt"

	"github.com/povarna/bitbucket-dc-mcp/internal/bitbucket"
	"github.com/povarna/bitbucket-dc-mcp/internal/config"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Config config.Config
	Client *bitbucket.Client
	Logger *zerolog.Logger
}

// Wire resolves the configuration from the environment and builds the
// Bitbucket client. A configuration error here is fatal: the server must not
// serve any tool call without a resolved configuration.
func Wire(logger *zerolog.Logger) (*Dependencies, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("resolve configuration: %w", err)
	}

	return &Dependencies{
		Config: cfg,
		Client: bitbucket.NewClient(cfg, logger),
		Logger: logger,
	}, nil
}
