package land

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dagster-io/workstack/internal/action"
	"github.com/dagster-io/workstack/internal/git"
	"github.com/dagster-io/workstack/internal/model"
)

// Result keys for the cleanup action stream.
const (
	KeyWorktreePath action.Key = "worktree.path"
	KeyScriptPath   action.Key = "script.path"
)

// Finish decides where the operator ends up after landing and emits the
// final output for the selected mode. With exactly one child above the last
// merged branch we navigate to it (creating its worktree on demand); with
// none we land on trunk; with several we stay put and let the operator
// choose.
func Finish(ctx *Context, plan *model.LandingPlan, result *model.LandingResult) error {
	if len(result.MergedBranches) == 0 {
		result.FinalBranch = plan.CurrentBranch
		result.FinalPath = ctx.WorkDir
		return emit(ctx, result, nil, "")
	}

	last := result.MergedBranches[len(result.MergedBranches)-1]
	children, err := remainingChildren(ctx, last, result.MergedBranches)
	if err != nil {
		return err
	}

	results := action.Results{}
	var acts []action.Action

	switch len(children) {
	case 1:
		child := children[0]
		result.FinalBranch = child
		wt, ok, err := git.FindWorktreeForBranch(ctx.Git, child)
		if err != nil {
			return err
		}
		if ok {
			result.FinalPath = wt.Path
			results[KeyWorktreePath] = wt.Path
		} else {
			path := filepath.Join(ctx.Cfg.WorktreeRoot(), child)
			result.FinalPath = path
			acts = append(acts, action.Action{
				Description: fmt.Sprintf("create worktree for '%s' at %s", child, path),
				ResultKey:   KeyWorktreePath,
				Run: func() (interface{}, error) {
					if err := ctx.Git.AddWorktree(path, child); err != nil {
						return nil, err
					}
					return path, nil
				},
			})
		}
	case 0:
		result.FinalBranch = ctx.Trunk
		wt, ok, err := git.FindWorktreeForBranch(ctx.Git, ctx.Trunk)
		if err != nil {
			return err
		}
		if ok {
			result.FinalPath = wt.Path
		} else {
			wts, err := ctx.Git.ListWorktrees()
			if err != nil {
				return err
			}
			if len(wts) > 0 {
				result.FinalPath = wts[0].Path
			} else {
				result.FinalPath = ctx.WorkDir
			}
		}
		results[KeyWorktreePath] = result.FinalPath
	default:
		// Ambiguous: several branches continue the stack. Stay put.
		result.FinalBranch = plan.CurrentBranch
		result.FinalPath = ctx.WorkDir
		results[KeyWorktreePath] = result.FinalPath
	}

	if ctx.Console.ScriptMode() {
		fallback := result.FinalPath
		acts = append(acts, action.Action{
			Description: fmt.Sprintf("write activation script for %s", fallback),
			ResultKey:   KeyScriptPath,
			Run: func() (interface{}, error) {
				dir, _ := results.Get(KeyWorktreePath).(string)
				if dir == "" {
					dir = fallback
				}
				return WriteActivationScript(dir)
			},
		})
	}

	if err := action.RunWith(ctx.Stream, acts, results); err != nil {
		return err
	}
	scriptPath, _ := results.Get(KeyScriptPath).(string)
	return emit(ctx, result, children, scriptPath)
}

// remainingChildren returns the stack children of branch that were not
// themselves landed in this run.
func remainingChildren(ctx *Context, branch string, merged []string) ([]string, error) {
	kids, err := ctx.Gt.ChildrenOf(branch)
	if err != nil {
		return nil, err
	}
	landed := make(map[string]bool, len(merged))
	for _, b := range merged {
		landed[b] = true
	}
	var out []string
	for _, k := range kids {
		if !landed[k] {
			out = append(out, k)
		}
	}
	return out, nil
}

func emit(ctx *Context, result *model.LandingResult, children []string, scriptPath string) error {
	c := ctx.Console

	if len(result.MergedBranches) > 0 {
		c.Success("Landed %d branch(es): %s", len(result.MergedBranches), strings.Join(result.MergedBranches, ", "))
	}
	switch {
	case len(children) > 1:
		c.Say("The stack continues with %d branches: %s", len(children), strings.Join(children, ", "))
		c.Say("Pick one and switch to it manually (workstack up).")
	case result.FinalBranch != "":
		c.Say("Now at '%s' (%s)", result.FinalBranch, result.FinalPath)
	}

	// The single stdout line the shell wrapper sources. Absent in dry-run,
	// where the script action never ran.
	if c.ScriptMode() && scriptPath != "" {
		c.Result(scriptPath)
	}
	return nil
}
