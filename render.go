package main

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"
)

const timestampFormat = "2006-01-02 15:04:05"

// RenderConfig controls how a scan result is turned into a document.
type RenderConfig struct {
	Title      string
	WikiLinks  bool
	ShowTokens bool
	Timestamp  time.Time
}

// section is one contiguous block of the rendered document. The document is
// assembled as an ordered slice of sections and serialized in a single pass,
// so structure can be tested independently of formatting.
type section interface {
	render(b *strings.Builder)
}

// renderIndex produces the complete index document in memory. Nothing is
// written to disk here; the caller decides where the bytes go.
func renderIndex(res *ScanResult, cfg RenderConfig) string {
	var b strings.Builder
	for _, s := range buildSections(res, cfg) {
		s.render(&b)
	}
	return b.String()
}

func buildSections(res *ScanResult, cfg RenderConfig) []section {
	sections := []section{
		titleSection{title: cfg.Title, generated: cfg.Timestamp},
		statsSection{stats: res.Stats, showTokens: cfg.ShowTokens},
		tocSection{dirs: res.Dirs},
	}
	for _, dir := range res.Dirs {
		sections = append(sections, dirSection{
			dir:        dir,
			entries:    res.Groups[dir],
			wikiLinks:  cfg.WikiLinks,
			showTokens: cfg.ShowTokens,
		})
	}
	return append(sections, footerSection{})
}

type titleSection struct {
	title     string
	generated time.Time
}

func (s titleSection) render(b *strings.Builder) {
	fmt.Fprintf(b, "# %s\n\n", s.title)
	fmt.Fprintf(b, "*Generated on: %s*\n\n", s.generated.Format(timestampFormat))
}

type statsSection struct {
	stats      ScanStats
	showTokens bool
}

func (s statsSection) render(b *strings.Builder) {
	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(b, "- **Total Files**: %d\n", s.stats.TotalFiles)
	fmt.Fprintf(b, "- **Total Directories**: %d\n", s.stats.TotalDirs)
	if s.showTokens {
		fmt.Fprintf(b, "- **Total Tokens**: %d\n", s.stats.TotalTokens)
	}
	b.WriteString("\n")
}

type tocSection struct {
	dirs []string
}

func (s tocSection) render(b *strings.Builder) {
	b.WriteString("## Table of Contents\n\n")
	for _, dir := range s.dirs {
		fmt.Fprintf(b, "- [📁 %s](#%s)\n", dirDisplay(dir), dirAnchor(dir))
	}
	b.WriteString("\n---\n\n")
}

type dirSection struct {
	dir        string
	entries    []FileEntry
	wikiLinks  bool
	showTokens bool
}

func (s dirSection) render(b *strings.Builder) {
	fmt.Fprintf(b, "## %s\n\n", dirDisplay(s.dir))
	fmt.Fprintf(b, "*%d file(s)*\n\n", len(s.entries))
	for _, e := range s.entries {
		b.WriteString("- ")
		b.WriteString(entryLink(e, s.wikiLinks))
		if e.Description != "" {
			fmt.Fprintf(b, " - %s", e.Description)
		}
		if s.showTokens {
			if e.Err != nil {
				b.WriteString(" (tokens unavailable)")
			} else {
				fmt.Fprintf(b, " (~%d tokens)", e.TokenCount)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

type footerSection struct{}

func (footerSection) render(b *strings.Builder) {
	b.WriteString("---\n\n")
	b.WriteString("*This index was automatically generated. To regenerate, run `dirindex`.*\n")
}

// entryLink renders one file link: the target is the relative path without
// extension, the display text is the file stem.
func entryLink(e FileEntry, wiki bool) string {
	target := strings.TrimSuffix(e.RelPath, path.Ext(e.RelPath))
	if wiki {
		return fmt.Sprintf("[[%s|%s]]", target, e.Stem)
	}
	return fmt.Sprintf("[%s](%s)", e.Stem, target)
}

func dirDisplay(dir string) string {
	if dir == "" {
		return "Root Directory"
	}
	return dir
}

// dirAnchor converts a directory path into a stable anchor id: lowercase,
// with runs of non-alphanumeric characters collapsed into single hyphens.
// The root uses the fixed token "root".
func dirAnchor(dir string) string {
	if dir == "" {
		return "root"
	}
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(dir) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
