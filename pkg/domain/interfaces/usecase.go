package interfaces

import (
	"context"

	"github.com/collie-dev/collie/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// TriageUseCase defines the interface for dependency-update triage
type TriageUseCase interface {
	// ProcessPullRequest verifies the update's origin, builds an
	// UpdateRequest, evaluates it against the policy and executes the
	// resulting decision
	ProcessPullRequest(ctx context.Context, pr *model.PullRequest) (*model.Decision, error)
}
