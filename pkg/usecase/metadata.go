package usecase

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/collie-dev/collie/pkg/domain/model"
)

var (
	// Matches "Bump left-pad from 1.3.0 to 1.3.1", "chore(deps): update
	// golang.org/x/net from 0.17.0 to 0.23.0 in /tools" and similar forms
	titleFromTo = regexp.MustCompile(`(?i)\b(?:bump|update|upgrade)s?\s+(\S+)\s+(?:requirement\s+)?from\s+(\S+)\s+to\s+(\S+)`)

	// Matches the shorter "Bump left-pad to 1.3.1" form, which carries no
	// previous version and therefore cannot be classified
	titleTo = regexp.MustCompile(`(?i)\b(?:bump|update|upgrade)s?\s+(\S+)\s+to\s+(\S+)`)
)

// branchEcosystems maps the directory segment of updater branch names
// (e.g. "dependabot/npm_and_yarn/left-pad-1.3.1") to ecosystem identifiers
var branchEcosystems = map[string]string{
	"npm_and_yarn":   "npm",
	"pip":            "pip",
	"go_modules":     "gomod",
	"cargo":          "cargo",
	"bundler":        "bundler",
	"maven":          "maven",
	"gradle":         "gradle",
	"nuget":          "nuget",
	"composer":       "composer",
	"docker":         "docker",
	"github_actions": "github-actions",
}

// labelEcosystems maps the language labels Dependabot attaches to PRs,
// used as a fallback when the branch name carries no ecosystem
var labelEcosystems = map[string]string{
	"javascript": "npm",
	"python":     "pip",
	"go":         "gomod",
	"rust":       "cargo",
	"ruby":       "bundler",
	"java":       "maven",
	"docker":     "docker",
	".net":       "nuget",
}

// ExtractUpdateRequest builds an UpdateRequest from the forge-side facts of
// an update PR. Ambiguous version metadata normalizes the update type to
// unknown; only an undeterminable package name is an error.
func ExtractUpdateRequest(pr *model.PullRequest) (*model.UpdateRequest, error) {
	name, updateType, err := parseTitle(pr.Title)
	if err != nil {
		return nil, err
	}

	ecosystem := ecosystemOf(pr)
	if ecosystem != "" {
		name = ecosystem + ":" + name
	}

	return &model.UpdateRequest{
		PackageName:   name,
		UpdateType:    updateType,
		Ecosystem:     ecosystem,
		IsSecurityFix: hasLabel(pr, "security"),
		SourceActor:   pr.Author,
	}, nil
}

func parseTitle(title string) (string, model.UpdateType, error) {
	if m := titleFromTo.FindStringSubmatch(title); m != nil {
		return trimToken(m[1]), model.ClassifyUpdate(trimToken(m[2]), trimToken(m[3])), nil
	}
	if m := titleTo.FindStringSubmatch(title); m != nil {
		// No previous version to compare against
		return trimToken(m[1]), model.UpdateTypeUnknown, nil
	}
	return "", model.UpdateTypeUnknown, goerr.New("could not determine package name from PR title",
		goerr.V("title", title))
}

// trimToken strips the quoting updaters put around package names and versions
func trimToken(s string) string {
	return strings.Trim(s, "`\"'")
}

func ecosystemOf(pr *model.PullRequest) string {
	parts := strings.Split(pr.HeadRef, "/")
	if len(parts) >= 3 && parts[0] == "dependabot" {
		if eco, ok := branchEcosystems[parts[1]]; ok {
			return eco
		}
		return parts[1]
	}

	for _, label := range pr.Labels {
		if eco, ok := labelEcosystems[strings.ToLower(label)]; ok {
			return eco
		}
	}
	return ""
}

func hasLabel(pr *model.PullRequest, name string) bool {
	for _, label := range pr.Labels {
		if strings.EqualFold(label, name) {
			return true
		}
	}
	return false
}
