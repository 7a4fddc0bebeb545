package model

// Policy is the caller-supplied rule set governing which updates may be
// auto-approved and auto-merged. It is immutable for the duration of one
// evaluation.
type Policy struct {
	MergeMethod        MergeMethod  // Attached to approve-and-merge decisions
	AllowedUpdateTypes []UpdateType // Membership only, ordering irrelevant
	ExcludedPackages   []string     // Exact case-sensitive package names
	AutoApprove        bool
	AutoMerge          bool
}

// Allows reports whether the update type is in the allowlist.
// An empty allowlist denies every type; that is a valid "manual review only"
// policy, not a misconfiguration.
func (p *Policy) Allows(t UpdateType) bool {
	for _, allowed := range p.AllowedUpdateTypes {
		if allowed == t {
			return true
		}
	}
	return false
}

// Excludes reports whether the package name is excluded. Matching is exact
// and case-sensitive; substring or case-insensitive overlap must not match.
func (p *Policy) Excludes(packageName string) bool {
	for _, excluded := range p.ExcludedPackages {
		if excluded == packageName {
			return true
		}
	}
	return false
}
