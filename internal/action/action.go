// Package action separates what a command wants to do from whether it
// actually happens. Commands declare an ordered list of Actions; a Stream
// decides per mode whether each executor runs. Keyed results land in a
// shared table that later actions' closures may read, giving a minimal
// ordered dataflow without a scheduler.
package action

import "github.com/dagster-io/workstack/internal/ui"

// Key identifies a stored result. Keys are declared as constants by the
// command that owns the stream run, so lookups are checked names rather
// than ad-hoc strings.
type Key string

// Action bundles a human description with a zero-argument executor. The
// executor is invoked at most once, by exactly one stream.
type Action struct {
	Description string
	ResultKey   Key
	Run         func() (interface{}, error)
}

// Results is the table a single stream run populates. It is scoped to that
// run and discarded afterward.
type Results map[Key]interface{}

// Get returns the stored value for key, or nil when absent (always the
// case in dry-run mode).
func (r Results) Get(key Key) interface{} {
	return r[key]
}

// Stream executes a single action according to its mode.
type Stream interface {
	Execute(a Action) (interface{}, error)
}

// Production invokes the executor exactly once and returns its value
// unchanged.
type Production struct{}

func (Production) Execute(a Action) (interface{}, error) {
	return a.Run()
}

// DryRunStream narrates what would happen and never calls the executor.
type DryRunStream struct {
	Console *ui.Console
}

func (s DryRunStream) Execute(a Action) (interface{}, error) {
	s.Console.DryRun(a.Description)
	return nil, nil
}

// RunWith executes actions in order against stream, storing keyed results
// into results. Correctness of inter-action reads depends entirely on list
// order. The first error stops the run.
func RunWith(stream Stream, actions []Action, results Results) error {
	for _, a := range actions {
		val, err := stream.Execute(a)
		if err != nil {
			return err
		}
		if a.ResultKey != "" {
			results[a.ResultKey] = val
		}
	}
	return nil
}

// Run is RunWith with a fresh results table, for action lists whose
// closures capture the table the caller built them around.
func Run(stream Stream, actions []Action) (Results, error) {
	results := Results{}
	err := RunWith(stream, actions, results)
	return results, err
}
