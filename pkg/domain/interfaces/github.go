package interfaces

import (
	"context"

	"github.com/collie-dev/collie/pkg/domain/model"
)

// GitHubClient defines the forge operations the triage flow needs: fetching
// PR metadata and executing decisions. Approve and Merge must tolerate
// at-least-once execution, since the webhook delivery may be re-triggered
// after a partial failure.
type GitHubClient interface {
	// PullRequest fetches the forge-side facts about one pull request
	PullRequest(ctx context.Context, owner, repo string, number int) (*model.PullRequest, error)

	// Approve submits an approving review. Approving an already-approved
	// pull request is a no-op, not an error.
	Approve(ctx context.Context, owner, repo string, number int) error

	// Merge merges the pull request with the given method. Merging an
	// already-merged pull request is a no-op, not an error.
	Merge(ctx context.Context, owner, repo string, number int, method model.MergeMethod) error

	// CreateComment posts a comment on the pull request
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
}
