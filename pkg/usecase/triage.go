package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/collie-dev/collie/pkg/domain/interfaces"
	"github.com/collie-dev/collie/pkg/domain/model"
)

// DefaultTrustedActors are the updater identities accepted when no explicit
// list is configured
var DefaultTrustedActors = []string{"dependabot[bot]", "renovate[bot]"}

type triageUseCase struct {
	githubClient  interfaces.GitHubClient
	policy        *model.Policy
	notifier      interfaces.Notifier
	trustedActors []string
	dryRun        bool
}

// TriageOption is a functional option for the triage use case
type TriageOption func(*triageUseCase)

// WithNotifier sets a notifier for Hold decisions
func WithNotifier(n interfaces.Notifier) TriageOption {
	return func(uc *triageUseCase) {
		uc.notifier = n
	}
}

// WithTrustedActors overrides the trusted updater identities
func WithTrustedActors(actors []string) TriageOption {
	return func(uc *triageUseCase) {
		uc.trustedActors = actors
	}
}

// WithDryRun evaluates without executing the decision
func WithDryRun(dryRun bool) TriageOption {
	return func(uc *triageUseCase) {
		uc.dryRun = dryRun
	}
}

// NewTriage creates a new instance of TriageUseCase
func NewTriage(githubClient interfaces.GitHubClient, policy *model.Policy, opts ...TriageOption) interfaces.TriageUseCase {
	uc := &triageUseCase{
		githubClient:  githubClient,
		policy:        policy,
		trustedActors: DefaultTrustedActors,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ProcessPullRequest verifies the update's origin, builds an UpdateRequest,
// evaluates it against the policy and executes the resulting decision
func (uc *triageUseCase) ProcessPullRequest(ctx context.Context, pr *model.PullRequest) (*model.Decision, error) {
	logger := ctxlog.From(ctx).With(
		"triage_id", uuid.NewString(),
		"owner", pr.Owner,
		"repo", pr.Repo,
		"number", pr.Number,
	)
	ctx = ctxlog.With(ctx, logger)

	if err := uc.verifyActor(pr); err != nil {
		logger.Warn("Actor verification failed", "author", pr.Author, "sender", pr.Sender)
		return nil, err
	}

	req, err := ExtractUpdateRequest(pr)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract update request",
			goerr.V("owner", pr.Owner), goerr.V("repo", pr.Repo), goerr.V("number", pr.Number))
	}

	decision := Evaluate(req, uc.policy)

	logger.Info("Triage decision",
		"package", req.PackageName,
		"update_type", req.UpdateType,
		"ecosystem", req.Ecosystem,
		"security_fix", req.IsSecurityFix,
		"action", decision.Action,
		"reason", decision.Reason,
	)

	if uc.dryRun {
		return decision, nil
	}

	if err := uc.execute(ctx, pr, req, decision); err != nil {
		return decision, err
	}

	return decision, nil
}

// verifyActor confirms the update genuinely originates from a trusted
// updater. The engine trusts whatever UpdateRequest it is given, so this
// check is the sole defense against spoofed metadata: the forge-authenticated
// author must be a trusted updater, and for webhook deliveries the event
// sender must be the author itself.
func (uc *triageUseCase) verifyActor(pr *model.PullRequest) error {
	trusted := false
	for _, actor := range uc.trustedActors {
		if pr.Author == actor {
			trusted = true
			break
		}
	}
	if !trusted {
		return goerr.New("pull request author is not a trusted updater",
			goerr.V("author", pr.Author),
			goerr.V("trusted", uc.trustedActors))
	}

	if pr.Sender != "" && pr.Sender != pr.Author {
		return goerr.New("event sender does not match pull request author, possible spoofing",
			goerr.V("author", pr.Author),
			goerr.V("sender", pr.Sender))
	}

	return nil
}

// execute performs exactly the action the decision names. Every branch is
// individually retryable: Approve and Merge are no-ops when already applied,
// and re-posting a comment is harmless.
func (uc *triageUseCase) execute(ctx context.Context, pr *model.PullRequest, req *model.UpdateRequest, decision *model.Decision) error {
	logger := ctxlog.From(ctx)

	switch decision.Action {
	case model.ActionApproveMerge:
		if err := uc.githubClient.Approve(ctx, pr.Owner, pr.Repo, pr.Number); err != nil {
			return goerr.Wrap(err, "failed to approve pull request")
		}
		if err := uc.githubClient.Merge(ctx, pr.Owner, pr.Repo, pr.Number, decision.MergeMethod); err != nil {
			return goerr.Wrap(err, "failed to merge pull request")
		}
		logger.Info("Approved and merged pull request", "merge_method", decision.MergeMethod)

	case model.ActionApproveOnly:
		if err := uc.githubClient.Approve(ctx, pr.Owner, pr.Repo, pr.Number); err != nil {
			return goerr.Wrap(err, "failed to approve pull request")
		}
		logger.Info("Approved pull request, merge withheld by policy")

	case model.ActionSkip, model.ActionHold:
		comment := formatDecisionComment(req, decision)
		if err := uc.githubClient.CreateComment(ctx, pr.Owner, pr.Repo, pr.Number, comment); err != nil {
			return goerr.Wrap(err, "failed to post decision comment")
		}
		logger.Info("Posted decision comment", "action", decision.Action, "reason", decision.Reason)

		if decision.Action == model.ActionHold && uc.notifier != nil {
			if err := uc.notifier.NotifyHold(ctx, pr, decision); err != nil {
				// The comment already landed; notification failure should
				// not fail the whole update
				logger.Error("Failed to notify hold decision", "error", err)
			}
		}

	default:
		return goerr.New("unknown decision action", goerr.V("action", decision.Action))
	}

	return nil
}

// formatDecisionComment formats a Skip/Hold decision as a markdown comment
func formatDecisionComment(req *model.UpdateRequest, decision *model.Decision) string {
	var sb strings.Builder

	switch decision.Action {
	case model.ActionHold:
		sb.WriteString("## 🐕 Update held for review\n\n")
	default:
		sb.WriteString("## 🐕 Update skipped\n\n")
	}

	sb.WriteString(decision.Explanation)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("**Package**: `%s`\n", req.PackageName))
	sb.WriteString(fmt.Sprintf("**Update type**: %s\n", req.UpdateType))
	sb.WriteString(fmt.Sprintf("**Reason**: `%s`\n", decision.Reason))

	sb.WriteString("\n---\n")
	sb.WriteString("🐕 Triaged by Collie\n")

	return sb.String()
}
