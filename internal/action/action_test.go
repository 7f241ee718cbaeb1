package action

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagster-io/workstack/internal/ui"
)

func TestProduction_ExecutesExactlyOnce(t *testing.T) {
	calls := 0
	a := Action{
		Description: "bump the counter",
		Run: func() (interface{}, error) {
			calls++
			return 42, nil
		},
	}

	got, err := Production{}.Execute(a)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

func TestDryRunStream_NeverCallsExecutor(t *testing.T) {
	var out, errOut bytes.Buffer
	stream := DryRunStream{Console: ui.NewConsoleWriters(&out, &errOut, false)}

	calls := 0
	a := Action{
		Description: "merge PR #7",
		Run: func() (interface{}, error) {
			calls++
			return 7, nil
		},
	}

	got, err := stream.Execute(a)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, calls)
	assert.Contains(t, out.String(), "(dry run) Would: merge PR #7")
}

func TestRunWith_PopulatesResultsInOrder(t *testing.T) {
	results := Results{}
	var order []string

	acts := []Action{
		{
			Description: "first",
			ResultKey:   "pr.number",
			Run: func() (interface{}, error) {
				order = append(order, "first")
				return 123, nil
			},
		},
		{
			Description: "second reads first",
			ResultKey:   "merge.ok",
			Run: func() (interface{}, error) {
				order = append(order, "second")
				// A later action may read what an earlier one stored.
				n, _ := results.Get("pr.number").(int)
				return n == 123, nil
			},
		},
	}

	require.NoError(t, RunWith(Production{}, acts, results))
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 123, results.Get("pr.number"))
	assert.Equal(t, true, results.Get("merge.ok"))
}

func TestRunWith_DryRunStoresAbsentValues(t *testing.T) {
	var out bytes.Buffer
	stream := DryRunStream{Console: ui.NewConsoleWriters(&out, &out, false)}

	results := Results{}
	acts := []Action{
		{Description: "a", ResultKey: "k", Run: func() (interface{}, error) { return "real", nil }},
	}

	require.NoError(t, RunWith(stream, acts, results))
	_, present := results["k"]
	assert.True(t, present, "key is populated even in dry-run")
	assert.Nil(t, results.Get("k"))
}

func TestRunWith_StopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	ran := []string{}

	acts := []Action{
		{Description: "ok", Run: func() (interface{}, error) { ran = append(ran, "ok"); return nil, nil }},
		{Description: "fails", Run: func() (interface{}, error) { ran = append(ran, "fails"); return nil, boom }},
		{Description: "never", Run: func() (interface{}, error) { ran = append(ran, "never"); return nil, nil }},
	}

	err := RunWith(Production{}, acts, Results{})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"ok", "fails"}, ran)
}
