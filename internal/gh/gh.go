package gh

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dagster-io/workstack/internal/run"
)

// PRState is the lifecycle state GitHub reports for a pull request.
// StateNone means no PR exists for the branch at all.
type PRState string

const (
	StateNone   PRState = "NONE"
	StateOpen   PRState = "OPEN"
	StateClosed PRState = "CLOSED"
	StateMerged PRState = "MERGED"
)

// Mergeability is GitHub's computed mergeability against the base branch.
// Unknown means the remote has not finished computing it; that is a
// transient state, not a stack defect.
type Mergeability string

const (
	Mergeable   Mergeability = "MERGEABLE"
	Conflicting Mergeability = "CONFLICTING"
	Unknown     Mergeability = "UNKNOWN"
)

// PRInfo is the status snapshot the lander plans from.
type PRInfo struct {
	State  PRState
	Number int
	Title  string
}

// Ops is the GitHub capability set, implemented over the gh CLI.
type Ops interface {
	// Reads.
	PRStatus(branch string) (PRInfo, error)
	PRMergeability(number int) (Mergeability, error)

	// Mutations.
	MergePR(number int, squash bool) error
}

// Real shells out to gh.
type Real struct {
	root string
}

// NewReal returns GitHub operations bound to the repository at root.
func NewReal(root string) *Real {
	return &Real{root: root}
}

type prListEntry struct {
	State  string `json:"state"`
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// PRStatus looks up the most recent PR whose head is branch. An empty list
// from gh means no PR exists.
func (r *Real) PRStatus(branch string) (PRInfo, error) {
	res, err := run.Command(r.root, "gh", "pr", "list",
		"--head", branch,
		"--state", "all",
		"--json", "state,number,title",
		"--limit", "1",
	)
	if err != nil {
		return PRInfo{}, err
	}
	var prs []prListEntry
	if err := json.Unmarshal([]byte(res.Stdout), &prs); err != nil {
		return PRInfo{}, fmt.Errorf("failed to parse gh pr list output: %v", err)
	}
	if len(prs) == 0 {
		return PRInfo{State: StateNone}, nil
	}
	return PRInfo{
		State:  PRState(strings.ToUpper(prs[0].State)),
		Number: prs[0].Number,
		Title:  prs[0].Title,
	}, nil
}

type prViewEntry struct {
	Mergeable        string `json:"mergeable"`
	MergeStateStatus string `json:"mergeStateStatus"`
}

func (r *Real) PRMergeability(number int) (Mergeability, error) {
	res, err := run.Command(r.root, "gh", "pr", "view", fmt.Sprintf("%d", number),
		"--json", "mergeable,mergeStateStatus",
	)
	if err != nil {
		return Unknown, err
	}
	var pr prViewEntry
	if err := json.Unmarshal([]byte(res.Stdout), &pr); err != nil {
		return Unknown, fmt.Errorf("failed to parse gh pr view output: %v", err)
	}
	switch strings.ToUpper(pr.Mergeable) {
	case "MERGEABLE":
		return Mergeable, nil
	case "CONFLICTING":
		return Conflicting, nil
	default:
		return Unknown, nil
	}
}

func (r *Real) MergePR(number int, squash bool) error {
	args := []string{"pr", "merge", fmt.Sprintf("%d", number)}
	if squash {
		args = append(args, "--squash")
	}
	_, err := run.Command(r.root, "gh", args...)
	return err
}

var _ Ops = (*Real)(nil)
