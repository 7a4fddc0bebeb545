package config

import "github.com/urfave/cli/v3"

// Notify holds Slack notification configuration. Notification is optional;
// it is enabled only when both token and channel are set.
type Notify struct {
	SlackOAuthToken string `masq:"secret"`
	SlackChannel    string
}

// Flags returns CLI flags for notification configuration
func (c *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for hold notifications",
			Destination: &c.SlackOAuthToken,
			Sources:     cli.EnvVars("COLLIE_SLACK_OAUTH_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for hold notifications",
			Destination: &c.SlackChannel,
			Sources:     cli.EnvVars("COLLIE_SLACK_CHANNEL"),
		},
	}
}

// Enabled reports whether Slack notification is configured
func (c *Notify) Enabled() bool {
	return c.SlackOAuthToken != "" && c.SlackChannel != ""
}
