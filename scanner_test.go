package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func notesScanConfig(root string) ScanConfig {
	return ScanConfig{
		Root:        root,
		IncludeExts: extensionSet(presets["notes"].IncludeExts, ""),
		ExcludeDirs: nameSet(defaultExcludeDirs, ""),
	}
}

func TestScanGroupsAndStats(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "welcome.md", "# welcome")
	writeTestFile(t, root, "personal/goals.md", "# goals")
	writeTestFile(t, root, "personal/daily-journal.md", "# journal")

	res, err := scanTree(notesScanConfig(root))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Stats.TotalFiles)
	assert.Equal(t, 2, res.Stats.TotalDirs)
	assert.Equal(t, []string{"", "personal"}, res.Dirs)

	require.Len(t, res.Groups[""], 1)
	assert.Equal(t, "welcome", res.Groups[""][0].Stem)
	assert.Equal(t, "welcome.md", res.Groups[""][0].RelPath)

	require.Len(t, res.Groups["personal"], 2)
	assert.Equal(t, "daily-journal", res.Groups["personal"][0].Stem)
	assert.Equal(t, "goals", res.Groups["personal"][1].Stem)
}

func TestScanExcludesOutputFile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "index.md", "old index")
	writeTestFile(t, root, "notes.md", "notes")

	cfg := notesScanConfig(root)
	cfg.ExcludePaths = []string{filepath.Join(root, "index.md")}

	res, err := scanTree(cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.TotalFiles)
	require.Len(t, res.Groups[""], 1)
	assert.Equal(t, "notes", res.Groups[""][0].Stem)
}

func TestScanEmptyRoot(t *testing.T) {
	res, err := scanTree(notesScanConfig(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, 0, res.Stats.TotalFiles)
	assert.Equal(t, 0, res.Stats.TotalDirs)
	assert.Empty(t, res.Dirs)
}

func TestScanSkipsExcludedDirsAtAnyDepth(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "keep.md", "keep")
	writeTestFile(t, root, "vendor/node_modules/pkg/readme.md", "skip")
	writeTestFile(t, root, "deep/nested/node_modules/also/skip.md", "skip")

	cfg := notesScanConfig(root)
	res, err := scanTree(cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.TotalFiles)
	assert.Equal(t, []string{""}, res.Dirs)
}

func TestScanRootMissing(t *testing.T) {
	cfg := notesScanConfig(filepath.Join(t.TempDir(), "does-not-exist"))
	_, err := scanTree(cfg)
	assert.Error(t, err)
}

func TestScanRootIsFile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "file.md", "x")

	cfg := notesScanConfig(filepath.Join(root, "file.md"))
	_, err := scanTree(cfg)
	assert.Error(t, err)
}

func TestScanSortsCaseInsensitively(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "Banana.md", "")
	writeTestFile(t, root, "apple.md", "")
	writeTestFile(t, root, "Cherry.md", "")

	res, err := scanTree(notesScanConfig(root))
	require.NoError(t, err)

	require.Len(t, res.Groups[""], 3)
	assert.Equal(t, "apple", res.Groups[""][0].Stem)
	assert.Equal(t, "Banana", res.Groups[""][1].Stem)
	assert.Equal(t, "Cherry", res.Groups[""][2].Stem)
}

func TestScanSkipsHiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "visible.md", "")
	writeTestFile(t, root, ".hidden.md", "")
	writeTestFile(t, root, ".secret/notes.md", "")

	res, err := scanTree(notesScanConfig(root))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.TotalFiles)

	cfg := notesScanConfig(root)
	cfg.ShowHidden = true
	res, err = scanTree(cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Stats.TotalFiles)
}

func TestScanHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, ".gitignore", "ignored.md\nbuild/\n")
	writeTestFile(t, root, "ignored.md", "")
	writeTestFile(t, root, "kept.md", "")
	writeTestFile(t, root, "build/out.md", "")
	writeTestFile(t, root, "sub/ignored.md", "")

	res, err := scanTree(notesScanConfig(root))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.TotalFiles)
	require.Len(t, res.Groups[""], 1)
	assert.Equal(t, "kept", res.Groups[""][0].Stem)

	cfg := notesScanConfig(root)
	cfg.NoIgnore = true
	res, err = scanTree(cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Stats.TotalFiles)
}

func TestScanExtractsDescriptions(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "totals.py", "\"\"\"Computes totals.\"\"\"\nprint(1)\n")
	writeTestFile(t, root, "plain.py", "print(1)\n")

	cfg := ScanConfig{
		Root:                root,
		IncludeExts:         extensionSet(presets["tools"].IncludeExts, ""),
		ExcludeDirs:         nameSet(defaultExcludeDirs, ""),
		ExtractDescriptions: true,
	}
	res, err := scanTree(cfg)
	require.NoError(t, err)

	require.Len(t, res.Groups[""], 2)
	assert.Equal(t, "", res.Groups[""][0].Description) // plain.py
	assert.Equal(t, "Computes totals.", res.Groups[""][1].Description)
}

func TestScanExtraIncludeExtensions(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "doc.md", "")
	writeTestFile(t, root, "doc.rst", "")

	cfg := notesScanConfig(root)
	cfg.IncludeExts = extensionSet(presets["notes"].IncludeExts, "rst")

	res, err := scanTree(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.TotalFiles)
}
