package land

import "fmt"

// ValidationError is a failed precondition. It is always reported before
// any mutation and always carries the exact command that fixes it.
type ValidationError struct {
	Message     string
	Remediation string
}

func (e *ValidationError) Error() string {
	if e.Remediation == "" {
		return e.Message
	}
	return fmt.Sprintf("%s\nTo fix, run: %s", e.Message, e.Remediation)
}

// MergeConflictError is a PR whose mergeability against trunk is
// CONFLICTING. It is distinct from a subprocess failure so the operator
// gets a rebase recipe rather than raw tool output.
type MergeConflictError struct {
	Branch   string
	PRNumber int
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf(
		"PR #%d for branch '%s' has conflicts with its base.\nTo fix, run: git fetch origin && gt restack, then push the restacked branch",
		e.PRNumber, e.Branch)
}
