package github

import (
	"context"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/collie-dev/collie/pkg/domain/interfaces"
	"github.com/collie-dev/collie/pkg/domain/model"
)

type client struct {
	githubClient *github.Client
}

// NewClient creates a new GitHub client with App authentication. All API
// calls go through a retrying transport for rate limits and transient
// failures.
func NewClient(appID, installationID int64, privateKey []byte) (interfaces.GitHubClient, error) {
	itr, err := ghinstallation.New(&retryTransport{}, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport")
	}

	githubClient := github.NewClient(&http.Client{Transport: itr})

	return &client{
		githubClient: githubClient,
	}, nil
}

// PullRequest fetches the forge-side facts about one pull request. The
// Sender field is left empty; it only exists for webhook deliveries.
func (c *client) PullRequest(ctx context.Context, owner, repo string, number int) (*model.PullRequest, error) {
	pr, _, err := c.githubClient.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get pull request",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("number", number))
	}

	result := &model.PullRequest{
		Owner:   owner,
		Repo:    repo,
		Number:  number,
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		Author:  pr.GetUser().GetLogin(),
		HeadRef: pr.GetHead().GetRef(),
	}
	for _, label := range pr.Labels {
		result.Labels = append(result.Labels, label.GetName())
	}

	return result, nil
}

// Approve submits an approving review. If a bot approval is already present
// the call is a no-op, so re-delivered webhooks do not stack reviews.
func (c *client) Approve(ctx context.Context, owner, repo string, number int) error {
	logger := ctxlog.From(ctx)

	reviews, _, err := c.githubClient.PullRequests.ListReviews(ctx, owner, repo, number, &github.ListOptions{PerPage: 100})
	if err != nil {
		return goerr.Wrap(err, "failed to list reviews",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("number", number))
	}
	for _, review := range reviews {
		if review.GetState() == "APPROVED" && review.GetUser().GetType() == "Bot" {
			logger.Info("Pull request already approved, skipping",
				"owner", owner, "repo", repo, "number", number)
			return nil
		}
	}

	_, _, err = c.githubClient.PullRequests.CreateReview(ctx, owner, repo, number, &github.PullRequestReviewRequest{
		Event: github.String("APPROVE"),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create approving review",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("number", number))
	}

	return nil
}

// Merge merges the pull request with the given method. Merging an
// already-merged pull request is a no-op.
func (c *client) Merge(ctx context.Context, owner, repo string, number int, method model.MergeMethod) error {
	logger := ctxlog.From(ctx)

	pr, _, err := c.githubClient.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return goerr.Wrap(err, "failed to get pull request before merge",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("number", number))
	}
	if pr.GetMerged() {
		logger.Info("Pull request already merged, skipping",
			"owner", owner, "repo", repo, "number", number)
		return nil
	}

	_, _, err = c.githubClient.PullRequests.Merge(ctx, owner, repo, number, "", &github.PullRequestOptions{
		MergeMethod: string(method),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to merge pull request",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("number", number),
			goerr.V("merge_method", method))
	}

	return nil
}

// CreateComment posts a comment on the pull request
func (c *client) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	_, _, err := c.githubClient.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create comment",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("number", number))
	}

	return nil
}
