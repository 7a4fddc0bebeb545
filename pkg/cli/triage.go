package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/collie-dev/collie/pkg/cli/config"
	"github.com/collie-dev/collie/pkg/domain/model"
	githubinfra "github.com/collie-dev/collie/pkg/infra/github"
	"github.com/collie-dev/collie/pkg/usecase"
)

func cmdTriage() *cli.Command {
	var (
		githubCfg config.GitHub
		policyCfg config.Policy
		repo      string
		prNumber  int64
		execute   bool
	)

	flags := githubCfg.Flags()
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Repository in owner/name form",
			Required:    true,
			Destination: &repo,
		},
		&cli.Int64Flag{
			Name:        "pr",
			Usage:       "Pull request number",
			Required:    true,
			Destination: &prNumber,
		},
		&cli.BoolFlag{
			Name:        "execute",
			Usage:       "Execute the decision instead of only printing it",
			Destination: &execute,
		},
	)

	return &cli.Command{
		Name:  "triage",
		Usage: "Evaluate one pull request against the configured policy",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			owner, name, ok := strings.Cut(repo, "/")
			if !ok || owner == "" || name == "" {
				return goerr.New("repo must be in owner/name form", goerr.V("repo", repo))
			}

			policy, err := policyCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load policy")
			}

			privateKey, err := githubCfg.PrivateKey()
			if err != nil {
				return err
			}

			githubClient, err := githubinfra.NewClient(githubCfg.AppID, githubCfg.InstallationID, privateKey)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			pr, err := githubClient.PullRequest(ctx, owner, name, int(prNumber))
			if err != nil {
				return err
			}

			triageOpts := []usecase.TriageOption{
				usecase.WithDryRun(!execute),
			}
			if len(githubCfg.TrustedActors) > 0 {
				triageOpts = append(triageOpts, usecase.WithTrustedActors(githubCfg.TrustedActors))
			}

			triageUC := usecase.NewTriage(githubClient, policy, triageOpts...)
			decision, err := triageUC.ProcessPullRequest(ctx, pr)
			if err != nil {
				return err
			}

			printDecision(pr, decision, execute)
			return nil
		},
	}
}

func printDecision(pr *model.PullRequest, decision *model.Decision, executed bool) {
	fmt.Printf("%s/%s#%d: %s\n", pr.Owner, pr.Repo, pr.Number, pr.Title)

	switch decision.Action {
	case model.ActionApproveMerge:
		fmt.Printf("  %s (merge method: %s)\n", color.GreenString("APPROVE+MERGE"), decision.MergeMethod)
	case model.ActionApproveOnly:
		fmt.Printf("  %s (merge withheld by policy)\n", color.GreenString("APPROVE"))
	case model.ActionSkip:
		fmt.Printf("  %s [%s] %s\n", color.YellowString("SKIP"), decision.Reason, decision.Explanation)
	case model.ActionHold:
		fmt.Printf("  %s [%s] %s\n", color.RedString("HOLD"), decision.Reason, decision.Explanation)
	}

	if !executed {
		fmt.Println("  (dry run, decision not executed; pass --execute to apply)")
	}
}
