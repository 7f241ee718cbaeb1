package land

import (
	"bytes"

	"github.com/dagster-io/workstack/internal/action"
	"github.com/dagster-io/workstack/internal/config"
	"github.com/dagster-io/workstack/internal/gh"
	"github.com/dagster-io/workstack/internal/git"
	"github.com/dagster-io/workstack/internal/gt"
	"github.com/dagster-io/workstack/internal/ui"
)

// fixture is the standard repo for landing tests: trunk main with the
// stack main -> feat-a -> feat-b -> feat-c, the command issued from the
// root worktree at /repo with feat-b checked out.
type fixture struct {
	git *git.Fake
	gh  *gh.Fake
	gt  *gt.Fake
	ctx *Context
	out *bytes.Buffer
	err *bytes.Buffer
}

func newFixture(opts ...func(*fixture)) *fixture {
	f := &fixture{
		git: git.NewFake(),
		gh:  gh.NewFake(),
		gt:  gt.NewFake(),
		out: &bytes.Buffer{},
		err: &bytes.Buffer{},
	}
	f.git.Branch = "feat-b"
	f.git.Worktrees = []git.Worktree{{Path: "/repo", Branch: "feat-b"}}

	f.gt.AddBranch("feat-a", "main")
	f.gt.AddBranch("feat-b", "feat-a")
	f.gt.AddBranch("feat-c", "feat-b")

	f.gh.PRs["feat-a"] = gh.PRInfo{State: gh.StateOpen, Number: 1, Title: "feat a"}
	f.gh.PRs["feat-b"] = gh.PRInfo{State: gh.StateOpen, Number: 2, Title: "feat b"}
	f.gh.PRs["feat-c"] = gh.PRInfo{State: gh.StateOpen, Number: 3, Title: "feat c"}

	for _, opt := range opts {
		opt(f)
	}

	f.ctx = &Context{
		Git:     f.git,
		GH:      f.gh,
		Gt:      f.gt,
		Cfg:     config.NewStatic("/repo", map[string]string{config.KeyStackingTool: "graphite"}),
		Console: ui.NewConsoleWriters(f.out, f.err, false),
		Stream:  action.Production{},
		WorkDir: "/repo",
		Trunk:   "main",
	}
	return f
}

// enableScriptMode reroutes narration to stderr, as the --script flag does.
func (f *fixture) enableScriptMode() {
	f.ctx.Console = ui.NewConsoleWriters(f.out, f.err, true)
}
