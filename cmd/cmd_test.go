package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestCommandsEndToEnd(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	db := filepath.Join(dir, "wordiz.db")

	list := filepath.Join(dir, "fruit.txt")
	require.NoError(t, os.WriteFile(list, []byte("apple: 苹果\npear:梨\napple:苹果\n"), 0o644))

	out := run(t, "--db", db, "import", list)
	assert.Contains(t, out, `Imported 2 words into "fruit"`)

	out = run(t, "--db", db, "libraries")
	assert.Contains(t, out, "fruit")
	assert.Contains(t, out, "1 libraries, 2 words")

	out = run(t, "--db", db, "search", "pea")
	assert.Contains(t, out, "pear")
	assert.Contains(t, out, "1 results")
	assert.Contains(t, out, "new")

	out = run(t, "--db", db, "add", "fruit", "plum", "李子")
	assert.Contains(t, out, `"fruit" now has 3 words`)
	out = run(t, "--db", db, "add", "fruit", "plum", "李子")
	assert.Contains(t, out, `"fruit" now has 3 words`)

	out = run(t, "--db", db, "stats")
	assert.Contains(t, out, "Statistics for all libraries")
	assert.Contains(t, out, "3 imported")
	assert.Contains(t, out, "First Steps")

	backup := filepath.Join(dir, "backup.json")
	out = run(t, "--db", db, "export", backup)
	assert.Contains(t, out, "Exported 1 libraries")

	out = run(t, "--db", db, "reset", "--yes", "--libraries")
	assert.Contains(t, out, "and libraries were reset")
	out = run(t, "--db", db, "libraries")
	assert.Contains(t, out, "No libraries yet")

	out = run(t, "--db", db, "restore", backup)
	assert.Contains(t, out, "Restored 1 libraries")

	out = run(t, "--db", db, "version")
	assert.Contains(t, out, "wordiz")
}

func TestResetNeedsConfirmation(t *testing.T) {
	t.Chdir(t.TempDir())
	resetCmd.Flags().Set("yes", "false")
	rootCmd.SetArgs([]string{"--db", filepath.Join(t.TempDir(), "w.db"), "reset"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.ErrorContains(t, rootCmd.Execute(), "--yes")
}

func TestBadConfigRejected(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("WORDIZ_MODE", "shouting")
	rootCmd.SetArgs([]string{"--db", filepath.Join(t.TempDir(), "w.db"), "version"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.ErrorContains(t, rootCmd.Execute(), "WORDIZ_MODE")
}
