package main

// Preset bundles the include-extension set and rendering behavior of one
// tool variant. Both variants share the same scanner and renderer.
type Preset struct {
	Name                string
	Title               string
	IncludeExts         []string
	WikiLinks           bool // Obsidian [[path|stem]] links instead of [stem](path)
	ExtractDescriptions bool
}

var presets = map[string]Preset{
	"notes": {
		Name:        "notes",
		Title:       "Notes Index",
		IncludeExts: []string{".md"},
		WikiLinks:   true,
	},
	"tools": {
		Name:  "tools",
		Title: "Utility Tools Index",
		IncludeExts: []string{
			".md", ".py", ".sh",
			".txt", ".json", ".yaml", ".yml", ".toml", ".cfg", ".ini",
		},
		ExtractDescriptions: true,
	},
}

// defaultExcludeDirs are skipped at any depth regardless of preset.
var defaultExcludeDirs = []string{
	".git",
	".obsidian",
	".idea",
	".vscode",
	".pytest_cache",
	"__pycache__",
	"node_modules",
	"venv",
	"env",
	".DS_Store",
}
