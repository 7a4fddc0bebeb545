package model

// Action is the triage action a Decision names
type Action string

const (
	ActionApproveMerge Action = "approve_merge" // Approve, then merge with the carried method
	ActionApproveOnly  Action = "approve_only"  // Approval granted, merge deliberately withheld
	ActionSkip         Action = "skip"          // Policy declined; carries a reason for the comment
	ActionHold         Action = "hold"          // Ambiguous classification; a human must look
)

// Reason is a closed set of policy outcomes carried on Skip and Hold
// decisions. These are routine results, never errors.
type Reason string

const (
	ReasonExcludedPackage      Reason = "excluded_package"
	ReasonUnclassifiedUpdate   Reason = "unclassified_update"
	ReasonDisallowedUpdateType Reason = "disallowed_update_type"
	ReasonApprovalDisabled     Reason = "approval_disabled"
)

// Decision is the output of one triage evaluation: a single-use immutable
// value the caller executes via the forge API.
type Decision struct {
	Action      Action
	MergeMethod MergeMethod // Set only for ActionApproveMerge
	Reason      Reason      // Set only for ActionSkip and ActionHold
	Explanation string      // Human-readable text for the comment on Skip/Hold
}

// ApproveMerge builds an approve-and-merge decision carrying the merge method
func ApproveMerge(method MergeMethod) *Decision {
	return &Decision{Action: ActionApproveMerge, MergeMethod: method}
}

// ApproveOnly builds an approval-without-merge decision
func ApproveOnly() *Decision {
	return &Decision{Action: ActionApproveOnly}
}

// Skip builds a policy-declined decision with a reason and explanation
func Skip(reason Reason, explanation string) *Decision {
	return &Decision{Action: ActionSkip, Reason: reason, Explanation: explanation}
}

// Hold builds a decision that surfaces the update for human attention,
// distinct from a policy-driven skip
func Hold(reason Reason, explanation string) *Decision {
	return &Decision{Action: ActionHold, Reason: reason, Explanation: explanation}
}
