package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub App configuration
type GitHub struct {
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
	WebhookSecret  string `masq:"secret"`
	TrustedActors  []string
}

// Flags returns CLI flags for GitHub configuration. The webhook secret is
// only needed by the serve command and is validated there.
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Required:    true,
			Destination: &c.AppID,
			Sources:     cli.EnvVars("COLLIE_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Required:    true,
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("COLLIE_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "Path to the GitHub App private key (PEM)",
			Required:    true,
			Destination: &c.PrivateKeyPath,
			Sources:     cli.EnvVars("COLLIE_GITHUB_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("COLLIE_GITHUB_WEBHOOK_SECRET"),
		},
		&cli.StringSliceFlag{
			Name:        "trusted-actor",
			Usage:       "Updater identity accepted as the PR author (repeatable)",
			Destination: &c.TrustedActors,
			Sources:     cli.EnvVars("COLLIE_TRUSTED_ACTORS"),
		},
	}
}

// PrivateKey reads the configured private key file
func (c *GitHub) PrivateKey() ([]byte, error) {
	key, err := os.ReadFile(c.PrivateKeyPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read GitHub App private key",
			goerr.V("path", c.PrivateKeyPath))
	}
	return key, nil
}
