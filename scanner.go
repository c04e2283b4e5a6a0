package main

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// ScanConfig carries everything a single scan pass needs. All fields are
// resolved by the caller; the scanner holds no global state.
type ScanConfig struct {
	Root                string          // absolute path of the directory to scan
	ExcludePaths        []string        // absolute paths never listed (the output file, a PDF target)
	IncludeExts         map[string]bool // lowercase extensions including the leading dot
	ExcludeDirs         map[string]bool // directory base names skipped at any depth
	ShowHidden          bool
	NoIgnore            bool // don't respect the root .gitignore
	ExtractDescriptions bool
}

// scanTree walks cfg.Root once and groups qualifying files by their
// directory relative to the root ("" for the root itself). Entries within a
// group are sorted case-insensitively by file name; group keys are ordered
// root first, then alphabetically.
func scanTree(cfg ScanConfig) (*ScanResult, error) {
	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("cannot access root %s: %w", cfg.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", cfg.Root)
	}

	var ignoreMatcher gitignore.IgnoreMatcher
	if !cfg.NoIgnore {
		gitIgnorePath := filepath.Join(cfg.Root, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				log.Warnf("could not parse %s: %v", gitIgnorePath, err)
			} else {
				ignoreMatcher = matcher
			}
		}
	}

	groups := make(map[string][]FileEntry)

	err = filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warnf("error accessing %s: %v", p, err)
			return nil
		}
		if p == cfg.Root {
			return nil
		}

		name := d.Name()
		isDir := d.IsDir()

		if !cfg.ShowHidden && isHidden(name) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}
		if isDir && cfg.ExcludeDirs[name] {
			return fs.SkipDir
		}

		// The matcher resolves paths against the .gitignore's own
		// directory, so it needs the full walk path.
		if ignoreMatcher != nil && ignoreMatcher.Match(p, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}
		if isDir {
			return nil
		}

		relPath, relErr := filepath.Rel(cfg.Root, p)
		if relErr != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		ext := strings.ToLower(filepath.Ext(name))
		if !cfg.IncludeExts[ext] {
			return nil
		}
		for _, excluded := range cfg.ExcludePaths {
			if samePath(p, excluded) {
				return nil
			}
		}

		entry := FileEntry{
			RelPath: relPath,
			AbsPath: p,
			Stem:    strings.TrimSuffix(name, filepath.Ext(name)),
			Dir:     dirKey(relPath),
		}
		if cfg.ExtractDescriptions {
			desc, descErr := extractDescription(p)
			if descErr != nil {
				// Non-fatal: the file is still listed, just undescribed.
				log.Warnf("could not read description from %s: %v", relPath, descErr)
			}
			entry.Description = desc
		}
		groups[entry.Dir] = append(groups[entry.Dir], entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", cfg.Root, err)
	}

	res := &ScanResult{Groups: groups}
	for dir, entries := range groups {
		sortEntries(entries)
		res.Dirs = append(res.Dirs, dir)
		res.Stats.TotalFiles += len(entries)
	}
	sort.Slice(res.Dirs, func(i, j int) bool {
		// Root ("") sorts before everything else.
		if (res.Dirs[i] == "") != (res.Dirs[j] == "") {
			return res.Dirs[i] == ""
		}
		return strings.ToLower(res.Dirs[i]) < strings.ToLower(res.Dirs[j])
	})
	res.Stats.TotalDirs = len(res.Dirs)

	return res, nil
}

// sortEntries orders entries case-insensitively by file name.
func sortEntries(entries []FileEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(path.Base(entries[i].RelPath)) <
			strings.ToLower(path.Base(entries[j].RelPath))
	})
}

// dirKey returns the group key for a relative slash path: its directory,
// with "" for files directly under the root.
func dirKey(relPath string) string {
	dir := path.Dir(relPath)
	if dir == "." {
		return ""
	}
	return dir
}

// samePath compares two paths after cleaning. Caller passes absolute paths.
func samePath(a, b string) bool {
	if b == "" {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

// isHidden checks if a base name is a dotfile.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return len(name) > 0 && name[0] == '.'
}
