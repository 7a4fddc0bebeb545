package usecase

import (
	"fmt"

	"github.com/collie-dev/collie/pkg/domain/model"
)

// triageRule is one step of the triage procedure: it either matches the
// request and yields a final decision, or returns nil to pass evaluation on
// to the next rule.
type triageRule struct {
	name     string
	evaluate func(req *model.UpdateRequest, pol *model.Policy) *model.Decision
}

// triageRules is evaluated top to bottom with first-match-wins semantics.
// The order is a correctness requirement: exclusion is checked before
// classification, classification before the allowlist, and the security-fix
// bypass applies only to the allowlist step. Reordering changes behavior.
var triageRules = []triageRule{
	{
		name: "excluded-package",
		evaluate: func(req *model.UpdateRequest, pol *model.Policy) *model.Decision {
			if !pol.Excludes(req.PackageName) {
				return nil
			}
			return model.Skip(model.ReasonExcludedPackage,
				fmt.Sprintf("package `%s` is excluded from automated updates by policy", req.PackageName))
		},
	},
	{
		// An unknown classification can't be trusted in either direction,
		// so it is surfaced for a human instead of skipped or approved.
		name: "unclassified-update",
		evaluate: func(req *model.UpdateRequest, pol *model.Policy) *model.Decision {
			if req.UpdateType != model.UpdateTypeUnknown {
				return nil
			}
			return model.Hold(model.ReasonUnclassifiedUpdate,
				fmt.Sprintf("the update type of `%s` could not be classified; this update needs human review", req.PackageName))
		},
	},
	{
		// Security fixes bypass the allowlist entirely: a vulnerability
		// remediation must not be blocked just because it is a major bump.
		name: "disallowed-update-type",
		evaluate: func(req *model.UpdateRequest, pol *model.Policy) *model.Decision {
			if pol.Allows(req.UpdateType) || req.IsSecurityFix {
				return nil
			}
			return model.Skip(model.ReasonDisallowedUpdateType,
				fmt.Sprintf("%s updates are not allowed by policy", req.UpdateType))
		},
	},
	{
		name: "approval-disabled",
		evaluate: func(req *model.UpdateRequest, pol *model.Policy) *model.Decision {
			if pol.AutoApprove {
				return nil
			}
			return model.Skip(model.ReasonApprovalDisabled,
				"automatic approval is disabled by policy")
		},
	},
	{
		name: "approve-only",
		evaluate: func(req *model.UpdateRequest, pol *model.Policy) *model.Decision {
			if pol.AutoMerge {
				return nil
			}
			return model.ApproveOnly()
		},
	},
}

// Evaluate runs the triage rules against one update request. It is a pure
// function: no I/O, no clock, deterministic for identical inputs, and safe
// for concurrent use. It never fails for well-formed input; malformed update
// types must be normalized to unknown before construction.
func Evaluate(req *model.UpdateRequest, pol *model.Policy) *model.Decision {
	for _, rule := range triageRules {
		if decision := rule.evaluate(req, pol); decision != nil {
			return decision
		}
	}
	return model.ApproveMerge(pol.MergeMethod)
}
