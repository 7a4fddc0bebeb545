package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/collie-dev/collie/pkg/domain/interfaces"
	"github.com/collie-dev/collie/pkg/domain/model"
)

type notifier struct {
	client  *slack.Client
	channel string
}

// NewNotifier creates a Slack notifier that posts Hold decisions to the
// given channel
func NewNotifier(token, channel string) interfaces.Notifier {
	return &notifier{
		client:  slack.New(token),
		channel: channel,
	}
}

// NotifyHold posts a message asking a human to look at a held update
func (n *notifier) NotifyHold(ctx context.Context, pr *model.PullRequest, decision *model.Decision) error {
	text := fmt.Sprintf(
		":dog: Dependency update held for review: *%s/%s#%d*\n> %s\n%s",
		pr.Owner, pr.Repo, pr.Number,
		pr.Title,
		decision.Explanation,
	)

	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post hold notification",
			goerr.V("channel", n.channel),
			goerr.V("owner", pr.Owner), goerr.V("repo", pr.Repo), goerr.V("number", pr.Number))
	}

	return nil
}
