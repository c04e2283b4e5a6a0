package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setDefaultFlags pins the flag globals the way cobra would after parsing
// no arguments, and restores whatever a previous test left behind.
func setDefaultFlags(t *testing.T) {
	t.Helper()
	prevPreset, prevOutput := presetName, outputName
	presetName = "notes"
	outputName = "index.md"
	t.Cleanup(func() {
		presetName, outputName = prevPreset, prevOutput
	})
}

func TestRunIndexWritesIndex(t *testing.T) {
	setDefaultFlags(t)
	root := t.TempDir()
	writeTestFile(t, root, "welcome.md", "# welcome")
	writeTestFile(t, root, "personal/goals.md", "# goals")

	require.NoError(t, runIndex([]string{root}))

	data, err := os.ReadFile(filepath.Join(root, "index.md"))
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, "# Notes Index")
	assert.Contains(t, doc, "- [[welcome|welcome]]")
	assert.Contains(t, doc, "- [[personal/goals|goals]]")
}

func TestRunIndexMissingRootReturnsError(t *testing.T) {
	setDefaultFlags(t)
	err := runIndex([]string{filepath.Join(t.TempDir(), "does-not-exist")})
	assert.Error(t, err)
}

func TestRunIndexUnknownPresetReturnsError(t *testing.T) {
	setDefaultFlags(t)
	presetName = "nope"
	err := runIndex([]string{t.TempDir()})
	assert.Error(t, err)
}

func TestRunIndexUnwritableOutputReturnsError(t *testing.T) {
	setDefaultFlags(t)
	root := t.TempDir()
	writeTestFile(t, root, "welcome.md", "# welcome")
	// Output path collides with a directory, so the write must fail
	// with an error return rather than a process exit.
	require.NoError(t, os.Mkdir(filepath.Join(root, "taken"), 0755))
	outputName = "taken"

	err := runIndex([]string{root})
	assert.Error(t, err)
}
