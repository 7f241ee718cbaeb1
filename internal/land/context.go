package land

import (
	"github.com/dagster-io/workstack/internal/action"
	"github.com/dagster-io/workstack/internal/config"
	"github.com/dagster-io/workstack/internal/gh"
	"github.com/dagster-io/workstack/internal/git"
	"github.com/dagster-io/workstack/internal/gt"
	"github.com/dagster-io/workstack/internal/ui"
)

// Context carries everything a landing run needs: the wrapped operation
// interfaces, config, console, and the worktree the command was issued
// from. One Context is built per invocation and threaded explicitly; there
// is no package-level state.
type Context struct {
	Git     git.Ops
	GH      gh.Ops
	Gt      gt.Ops
	Cfg     *config.Config
	Console *ui.Console
	Stream  action.Stream

	// WorkDir is the top-level directory of the worktree the command was
	// issued from. Trunk is the repository's default branch.
	WorkDir string
	Trunk   string
	DryRun  bool
}

// Options selects the wrapping composition for one invocation.
type Options struct {
	DryRun     bool
	ScriptMode bool
}

// NewContext wires the effect-wrapping triad. Printing is always the
// outermost wrapper, so narration is identical whether or not the mutation
// underneath is suppressed: Printing(Real) normally, Printing(DryRun(Real))
// under --dry-run.
func NewContext(workDir string, cfg *config.Config, opts Options) (*Context, error) {
	console := ui.NewConsole(opts.ScriptMode)

	var (
		gitOps git.Ops = git.NewReal(workDir)
		ghOps  gh.Ops  = gh.NewReal(workDir)
		gtOps  gt.Ops  = gt.NewReal(workDir)
	)
	if opts.DryRun {
		gitOps = git.NewDryRun(gitOps)
		ghOps = gh.NewDryRun(ghOps)
		gtOps = gt.NewDryRun(gtOps)
	}
	gitOps = git.NewPrinting(gitOps, console)
	ghOps = gh.NewPrinting(ghOps, console)
	gtOps = gt.NewPrinting(gtOps, console)

	var stream action.Stream = action.Production{}
	if opts.DryRun {
		stream = action.DryRunStream{Console: console}
	}

	trunk := cfg.Get(config.KeyTrunkBranch)
	if trunk == "" {
		var err error
		trunk, err = gitOps.DefaultBranch()
		if err != nil {
			return nil, err
		}
	}

	return &Context{
		Git:     gitOps,
		GH:      ghOps,
		Gt:      gtOps,
		Cfg:     cfg,
		Console: console,
		Stream:  stream,
		WorkDir: workDir,
		Trunk:   trunk,
		DryRun:  opts.DryRun,
	}, nil
}
