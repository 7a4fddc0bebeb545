package model

// PullRequest holds the forge-side facts about one dependency-update PR,
// as reported by the forge itself (not by the update metadata)
type PullRequest struct {
	Owner   string   // Repository owner
	Repo    string   // Repository name
	Number  int      // PR number
	Title   string   // PR title, e.g. "Bump left-pad from 1.3.0 to 1.3.1"
	Body    string   // PR body
	Author  string   // Forge-authenticated PR author login
	Sender  string   // Webhook sender login (event actor)
	HeadRef string   // Head branch name, e.g. "dependabot/npm_and_yarn/left-pad-1.3.1"
	Labels  []string // PR label names
}
