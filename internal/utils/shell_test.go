package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "plain", ShellQuote("plain"))
	assert.Equal(t, "''", ShellQuote(""))
	assert.Equal(t, "'with space'", ShellQuote("with space"))
	assert.Equal(t, `'it'\''s'`, ShellQuote("it's"))
	assert.Equal(t, "'a$b'", ShellQuote("a$b"))
}

func TestShellJoin(t *testing.T) {
	assert.Equal(t, "gh pr merge 42 --squash", ShellJoin("gh", "pr", "merge", "42", "--squash"))
	assert.Equal(t, "git commit -m 'two words'", ShellJoin("git", "commit", "-m", "two words"))
}
