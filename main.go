package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Scanning
	presetName  string
	includeExts string
	excludeDirs string
	showHidden  bool
	noIgnore    bool

	// Output
	outputName      string
	copyToClipboard bool
	pdfOutputFile   string

	// Token counting
	countTokensFlag bool
	tokenizerModel  string
	numThreads      int

	// Interactive mode
	interactiveMode bool
)

var log = logrus.New()

// version is the application version, set via ldflags.
var version string = "dev"

var rootCmd = &cobra.Command{
	Use:   "dirindex [DIRECTORY]",
	Short: "dirindex generates a navigable index.md for a directory tree.",
	Long: `dirindex scans a directory tree (or a Git repository URL) for
documentation and script files and writes a single index document with a
table of contents, per-directory sections, and statistics.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Fatal errors travel up as error returns so deferred cleanup
		// (temp clones, tokenizer) runs before the process exits.
		if err := runIndex(args); err != nil {
			log.Fatalf("%v", err)
		}
	},
}

func runIndex(args []string) error {
	preset, ok := presets[presetName]
	if !ok {
		return fmt.Errorf("unknown preset %q (expected notes or tools)", presetName)
	}

	// Determine the root: interactive pick, argument, or cwd.
	root := "."
	if interactiveMode {
		picked, err := pickRootInteractive()
		if err != nil {
			return fmt.Errorf("interactive mode error: %w", err)
		}
		if picked == "" {
			// User aborted the selection.
			return nil
		}
		root = picked
	} else if len(args) > 0 {
		root = args[0]
	}

	// Git URLs are cloned to a temp tree and indexed like a local one.
	remoteSource := false
	if isGitURL(root) {
		tempDir, err := cloneGitRepo(root)
		if err != nil {
			return err
		}
		defer os.RemoveAll(tempDir)
		root = tempDir
		remoteSource = true
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("directory %q does not exist or is not a directory", root)
	}

	// The output lands inside the root unless given absolute, or unless
	// the root is a throwaway clone.
	outPath := outputName
	if !filepath.IsAbs(outPath) {
		if remoteSource {
			outPath, err = filepath.Abs(outPath)
			if err != nil {
				return fmt.Errorf("cannot resolve output path %s: %w", outputName, err)
			}
		} else {
			outPath = filepath.Join(absRoot, outPath)
		}
	}
	pdfPath := pdfOutputFile
	if pdfPath != "" && !filepath.IsAbs(pdfPath) {
		pdfPath = filepath.Join(filepath.Dir(outPath), pdfPath)
	}

	cfg := ScanConfig{
		Root:                absRoot,
		ExcludePaths:        []string{outPath, pdfPath},
		IncludeExts:         extensionSet(preset.IncludeExts, includeExts),
		ExcludeDirs:         nameSet(defaultExcludeDirs, excludeDirs),
		ShowHidden:          showHidden,
		NoIgnore:            noIgnore,
		ExtractDescriptions: preset.ExtractDescriptions,
	}

	log.Infof("scanning %s", absRoot)
	res, err := scanTree(cfg)
	if err != nil {
		return err
	}

	tokensCounted := false
	if countTokensFlag {
		tk, err := newTokenizer(tokenizerModel)
		if err != nil {
			log.Warnf("token counting disabled: %v", err)
		} else {
			defer tk.Close()
			countTokens(res, tk, numThreads)
			tokensCounted = true
		}
	}

	content := renderIndex(res, RenderConfig{
		Title:      preset.Title,
		WikiLinks:  preset.WikiLinks,
		ShowTokens: tokensCounted,
		Timestamp:  time.Now(),
	})

	if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", outPath, err)
	}
	log.Infof("index written to %s (%d files, %d directories)",
		outPath, res.Stats.TotalFiles, res.Stats.TotalDirs)

	if copyToClipboard {
		if err := clipboard.WriteAll(content); err != nil {
			log.Warnf("could not copy to clipboard: %v", err)
		} else {
			log.Info("index copied to clipboard")
		}
	}
	if pdfPath != "" {
		if err := writePDF(content, pdfPath); err != nil {
			return err
		}
		log.Infof("PDF written to %s", pdfPath)
	}
	return nil
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	cobra.OnInitialize(initConfig)

	// Scanning
	rootCmd.Flags().StringVar(&presetName, "preset", "notes", "Preset: notes (markdown only, wiki links) or tools (scripts and config too)")
	viper.BindPFlag("preset", rootCmd.Flags().Lookup("preset"))
	rootCmd.Flags().StringVarP(&includeExts, "include", "i", "", "Additional extensions to include (comma-separated, e.g. .rst,.org)")
	viper.BindPFlag("include", rootCmd.Flags().Lookup("include"))
	rootCmd.Flags().StringVarP(&excludeDirs, "exclude", "e", "", "Additional directory names to exclude (comma-separated)")
	viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	viper.BindPFlag("default_excludes", rootCmd.Flags().Lookup("exclude"))
	rootCmd.Flags().BoolVarP(&showHidden, "hidden", "H", false, "Include hidden files and directories")
	viper.BindPFlag("hidden", rootCmd.Flags().Lookup("hidden"))
	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't respect the root .gitignore")
	viper.BindPFlag("no_ignore", rootCmd.Flags().Lookup("no-ignore"))

	// Output
	rootCmd.Flags().StringVarP(&outputName, "output", "o", "index.md", "Output file name, resolved inside the scanned directory")
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Also copy the index to the clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Also render the index as a PDF")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))

	// Token counting
	rootCmd.Flags().BoolVar(&countTokensFlag, "tokens", false, "Annotate entries with estimated token counts")
	viper.BindPFlag("tokens", rootCmd.Flags().Lookup("tokens"))
	rootCmd.Flags().StringVar(&tokenizerModel, "model", "gpt-4o", "Model name for token counting")
	viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	rootCmd.Flags().IntVarP(&numThreads, "threads", "t", 0, "Number of workers for token counting (0 for auto)")
	viper.BindPFlag("threads", rootCmd.Flags().Lookup("threads"))

	// Interactive mode
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Fuzzy-pick the directory to index")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	viper.SetDefault("preset", "notes")
	viper.SetDefault("output", "index.md")
	viper.SetDefault("hidden", false)
	viper.SetDefault("no_ignore", false)
	viper.SetDefault("tokens", false)
	viper.SetDefault("model", "gpt-4o")
	viper.SetDefault("threads", 0)
	viper.SetDefault("default_excludes", []string{})
}

// initConfig reads in the config file and DIRINDEX_* environment variables.
func initConfig() {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.AddConfigPath(filepath.Join(home, ".config", "dirindex"))
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DIRINDEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		log.Warnf("error reading config file: %v", err)
	}

	// Config-file excludes provide the default for the flag; an explicit -e
	// overrides them.
	if !rootCmd.Flags().Changed("exclude") {
		excludeDirs = strings.Join(viper.GetStringSlice("default_excludes"), ",")
	}
}

// extensionSet merges preset extensions with a comma-separated extra list
// into a lookup set. Extensions are lowercased and get a leading dot.
func extensionSet(preset []string, extra string) map[string]bool {
	set := make(map[string]bool, len(preset))
	for _, ext := range preset {
		set[strings.ToLower(ext)] = true
	}
	for _, ext := range splitList(extra) {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

// nameSet merges default directory names with a comma-separated extra list.
func nameSet(defaults []string, extra string) map[string]bool {
	set := make(map[string]bool, len(defaults))
	for _, name := range defaults {
		set[name] = true
	}
	for _, name := range splitList(extra) {
		set[name] = true
	}
	return set
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
