package usecase

import (
	"context"
	"encoding/json"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/collie-dev/collie/pkg/domain/interfaces"
	"github.com/collie-dev/collie/pkg/domain/model"
)

type webhookUseCase struct {
	triage interfaces.TriageUseCase
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(triage interfaces.TriageUseCase) interfaces.WebhookUseCase {
	return &webhookUseCase{
		triage: triage,
	}
}

// ProcessEvent processes a webhook event and routes supported pull_request
// actions into the triage flow
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Repository,
		"sender", event.Sender,
	)

	if !event.IsSupportedEvent() {
		logger.Info("Ignoring unsupported event",
			"type", event.Type,
			"action", event.Action,
		)
		return nil
	}

	var prEvent github.PullRequestEvent
	if err := json.Unmarshal(event.RawPayload, &prEvent); err != nil {
		return goerr.Wrap(err, "failed to unmarshal pull request event")
	}

	pr := &model.PullRequest{
		Owner:   prEvent.GetRepo().GetOwner().GetLogin(),
		Repo:    prEvent.GetRepo().GetName(),
		Number:  prEvent.GetPullRequest().GetNumber(),
		Title:   prEvent.GetPullRequest().GetTitle(),
		Body:    prEvent.GetPullRequest().GetBody(),
		Author:  prEvent.GetPullRequest().GetUser().GetLogin(),
		Sender:  prEvent.GetSender().GetLogin(),
		HeadRef: prEvent.GetPullRequest().GetHead().GetRef(),
	}
	for _, label := range prEvent.GetPullRequest().Labels {
		pr.Labels = append(pr.Labels, label.GetName())
	}

	decision, err := uc.triage.ProcessPullRequest(ctx, pr)
	if err != nil {
		return goerr.Wrap(err, "failed to triage pull request",
			goerr.V("repository", event.Repository))
	}

	logger.Info("Webhook event processed",
		"action", decision.Action,
		"reason", decision.Reason,
	)

	return nil
}
