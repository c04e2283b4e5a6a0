package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// descMaxLen bounds extracted descriptions; longer ones are truncated with
// an ellipsis.
const descMaxLen = 100

// extractDescription reads the leading documentation comment of a script
// file and returns its first non-empty line. Files that aren't scripts, or
// scripts without such a comment, yield an empty description. A read error
// is returned so the caller can warn, but the entry is still listed.
func extractDescription(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return pythonDocstring(path)
	case ".sh":
		return shellComment(path)
	default:
		return "", nil
	}
}

// pythonDocstring returns the first non-empty line of a module-level
// """ or ''' docstring.
func pythonDocstring(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	inDocstring := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, `"""`) || strings.Contains(line, "'''") {
			if inDocstring {
				break // closing delimiter, docstring was empty so far
			}
			inDocstring = true
			// Docstring text may start on the delimiter line itself.
			content := strings.Trim(line, `"'`)
			content = strings.TrimSpace(content)
			if content != "" {
				return truncateDescription(content), nil
			}
			continue
		}
		if inDocstring {
			if line != "" {
				return truncateDescription(line), nil
			}
		} else if line != "" && !strings.HasPrefix(line, "#") {
			// Code before any docstring: there is none.
			break
		}
	}
	return "", scanner.Err()
}

// shellComment returns the first non-empty leading comment line of a shell
// script, skipping the shebang.
func shellComment(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#!") {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			break // first non-comment line ends the header
		}
		text := strings.TrimSpace(strings.TrimLeft(line, "#"))
		if text != "" {
			return truncateDescription(text), nil
		}
	}
	return "", scanner.Err()
}

func truncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= descMaxLen {
		return s
	}
	return string(runes[:descMaxLen]) + "..."
}
