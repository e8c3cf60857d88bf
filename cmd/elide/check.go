package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"elide/internal/diag"
	"elide/internal/diagfmt"
	"elide/internal/driver"
	"elide/internal/project"
	"elide/internal/source"
	"elide/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.rs|directory>",
	Short: "Lint a Rust source file or directory",
	Long:  `Run the redundant 'static lifetime check over a single file or every *.rs file within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "show before/after previews for fixes")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("cache", false, "reuse cached results for unchanged files")
	checkCmd.Flags().StringSlice("exclude", nil, "directory names to skip when walking")
	checkCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
}

// checkConfig is the merged view of manifest defaults and command flags.
// Flags win when explicitly set.
type checkConfig struct {
	format           string
	jobs             int
	maxDiagnostics   int
	noWarnings       bool
	warningsAsErrors bool
	withNotes        bool
	suggest          bool
	preview          bool
	fullPath         bool
	cache            bool
	exclude          []string
	timings          bool
	quiet            bool
}

func loadCheckConfig(cmd *cobra.Command, targetPath string) (checkConfig, error) {
	var cfg checkConfig
	var err error

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if cfg.format, err = flags.GetString("format"); err != nil {
		return cfg, err
	}
	if cfg.jobs, err = flags.GetInt("jobs"); err != nil {
		return cfg, err
	}
	if cfg.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return cfg, err
	}
	if cfg.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return cfg, err
	}
	if cfg.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
		return cfg, err
	}
	if cfg.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return cfg, err
	}
	if cfg.suggest, err = flags.GetBool("suggest"); err != nil {
		return cfg, err
	}
	if cfg.preview, err = flags.GetBool("preview"); err != nil {
		return cfg, err
	}
	if cfg.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return cfg, err
	}
	if cfg.cache, err = flags.GetBool("cache"); err != nil {
		return cfg, err
	}
	if cfg.exclude, err = flags.GetStringSlice("exclude"); err != nil {
		return cfg, err
	}
	if cfg.timings, err = root.GetBool("timings"); err != nil {
		return cfg, err
	}
	if cfg.quiet, err = root.GetBool("quiet"); err != nil {
		return cfg, err
	}

	if cfg.noWarnings && cfg.warningsAsErrors {
		return cfg, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}

	applyManifest(&cfg, cmd, targetPath)
	return cfg, nil
}

// applyManifest overlays elide.toml defaults beneath unset flags. A broken
// manifest is a warning, not a hard failure.
func applyManifest(cfg *checkConfig, cmd *cobra.Command, targetPath string) {
	startDir := targetPath
	if info, err := os.Stat(targetPath); err == nil && !info.IsDir() {
		startDir = filepath.Dir(targetPath)
	}
	manifestPath, ok, err := project.FindManifest(startDir)
	if err != nil || !ok {
		return
	}
	manifest, unknown, err := project.Load(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v [%s]\n", err, diag.ProjInvalidManifest.ID())
		return
	}
	for _, key := range unknown {
		fmt.Fprintf(os.Stderr, "warning: unknown key %q in %s [%s]\n", key, manifestPath, diag.ProjUnknownKey.ID())
	}

	flags := cmd.Flags()
	if !flags.Changed("format") && manifest.Check.Format != "" {
		cfg.format = manifest.Check.Format
	}
	if !flags.Changed("jobs") && manifest.Check.Jobs > 0 {
		cfg.jobs = manifest.Check.Jobs
	}
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && manifest.Check.MaxDiagnostics > 0 {
		cfg.maxDiagnostics = manifest.Check.MaxDiagnostics
	}
	if !flags.Changed("no-warnings") && manifest.Check.NoWarnings {
		cfg.noWarnings = true
	}
	if !flags.Changed("warnings-as-errors") && manifest.Check.WarningsAsErrors {
		cfg.warningsAsErrors = true
	}
	if !flags.Changed("exclude") && len(manifest.Check.Exclude) > 0 {
		cfg.exclude = manifest.Check.Exclude
	}
	if !flags.Changed("cache") && manifest.Check.Cache != nil {
		cfg.cache = *manifest.Check.Cache
	}
}

func (cfg *checkConfig) driverOptions() (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: cfg.maxDiagnostics,
		Jobs:           cfg.jobs,
		Exclude:        cfg.exclude,
		Timings:        cfg.timings,
	}
	if cfg.cache {
		cache, err := driver.OpenDiskCache("elide")
		if err != nil {
			return opts, fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

// adjustBag applies warning filtering and escalation, then sorts.
func adjustBag(bag *diag.Bag, cfg *checkConfig) *diag.Bag {
	if bag == nil {
		return nil
	}
	if !cfg.noWarnings && !cfg.warningsAsErrors {
		bag.Sort()
		return bag
	}
	adjusted := diag.NewBag(int(bag.Cap()))
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			if cfg.noWarnings {
				continue
			}
			d.Severity = diag.SevError
		}
		adjusted.Add(d)
	}
	adjusted.Sort()
	return adjusted
}

func runCheck(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	cfg, err := loadCheckConfig(cmd, targetPath)
	if err != nil {
		return err
	}

	switch cfg.format {
	case "pretty", "json", "sarif", "short":
	default:
		return fmt.Errorf("unknown format: %s", cfg.format)
	}

	opts, err := cfg.driverOptions()
	if err != nil {
		return err
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var exitCode int
	if info.IsDir() {
		exitCode, err = checkDir(cmd, targetPath, &cfg, opts)
	} else {
		exitCode, err = checkFile(cmd, targetPath, &cfg, opts)
	}
	if err != nil {
		return err
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

func checkFile(cmd *cobra.Command, path string, cfg *checkConfig, opts driver.Options) (int, error) {
	fs, result, err := driver.LintPath(path, opts)
	if err != nil {
		return 0, err
	}

	bag := adjustBag(result.Bag, cfg)
	if err := renderBag(cmd, bag, fs, cfg); err != nil {
		return 0, err
	}
	if bag.HasErrors() {
		return 1, nil
	}
	return 0, nil
}

func checkDir(cmd *cobra.Command, dir string, cfg *checkConfig, opts driver.Options) (int, error) {
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return 0, err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return 0, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var fs *source.FileSet
	var results []driver.FileResult
	if cfg.format == "pretty" && !cfg.quiet && shouldUseTUI(mode) {
		fs, results, err = runLintDirWithUI(ctx, "elide check "+dir, dir, opts)
	} else {
		fs, results, err = driver.LintDir(ctx, dir, opts)
	}
	if err != nil {
		return 0, err
	}

	merged := diag.NewBag(cfg.maxDiagnostics)
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		merged.Merge(adjustBag(r.Bag, cfg))
	}
	merged.Sort()

	if err := renderBag(cmd, merged, fs, cfg); err != nil {
		return 0, err
	}
	if merged.HasErrors() {
		return 1, nil
	}
	return 0, nil
}

func renderBag(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, cfg *checkConfig) error {
	pathMode := diagfmt.PathModeAuto
	if cfg.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	showFixes := cfg.suggest || cfg.preview

	switch cfg.format {
	case "pretty":
		colored, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		diagfmt.Pretty(os.Stdout, bag, fs, diagfmt.PrettyOpts{
			Color:       colored,
			Context:     2,
			PathMode:    pathMode,
			ShowNotes:   cfg.withNotes,
			ShowFixes:   showFixes,
			ShowPreview: cfg.preview,
		})
	case "short":
		diagfmt.Short(os.Stdout, bag, fs, diagfmt.ShortOpts{PathMode: pathMode})
	case "json":
		return diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     cfg.withNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  cfg.preview,
		})
	case "sarif":
		return diagfmt.Sarif(os.Stdout, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "elide",
			ToolVersion:    version.Semantic,
			InvocationArgs: os.Args,
		})
	}
	return nil
}
