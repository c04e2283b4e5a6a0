package main

// FileEntry holds information about one qualifying file discovered during a scan.
type FileEntry struct {
	RelPath     string // slash-separated path relative to the scan root
	AbsPath     string // absolute path, used for content reads (descriptions, tokens)
	Stem        string // file name without extension, used as link display text
	Dir         string // owning directory key, "" for the root
	Description string // first docstring/comment line, tools preset only
	TokenCount  int    // populated when token counting is enabled
	Err         error  // non-fatal read error during token counting, shown in place of the count
}

// ScanResult is the grouping produced by a single scan pass.
type ScanResult struct {
	// Groups maps a relative directory path ("" for the root) to its
	// entries, sorted case-insensitively by file name.
	Groups map[string][]FileEntry

	// Dirs lists the non-empty group keys in render order: root first,
	// then case-insensitive alphabetical.
	Dirs []string

	Stats ScanStats
}

// ScanStats holds the counts shown in the rendered statistics block.
type ScanStats struct {
	TotalFiles  int
	TotalDirs   int
	TotalTokens int // only meaningful when token counting ran
}

// Entries returns all entries across groups in render order.
func (r *ScanResult) Entries() []FileEntry {
	out := make([]FileEntry, 0, r.Stats.TotalFiles)
	for _, dir := range r.Dirs {
		out = append(out, r.Groups[dir]...)
	}
	return out
}
