package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"elide/internal/diag"
	"elide/internal/driver"
	"elide/internal/fix"
	"elide/internal/project"
)

// Nested annotations surface one level per lint pass, so --all iterates
// apply-and-relint until a pass changes nothing.
const maxFixPasses = 8

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.rs|directory>",
	Short: "Apply available fixes to a source file or directory",
	Long:  "Run the lint, surface available fixes, and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes, repeating until none remain")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	} else if !applyOnceFlag {
		mode = fixModeFromManifest(cmd, targetPath, mode)
	}
	opts := fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	driverOpts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Timings:        showTimings,
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	// a fix id embeds one file's span, so it cannot address a directory
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: id can only be used with a single file")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return runFixPasses(ctx, targetPath, info.IsDir(), driverOpts, opts)
}

// fixModeFromManifest consults elide.toml's [fix].mode when no mode flag was
// given.
func fixModeFromManifest(cmd *cobra.Command, targetPath string, fallback fix.ApplyMode) fix.ApplyMode {
	startDir := targetPath
	if info, err := os.Stat(targetPath); err == nil && !info.IsDir() {
		startDir = filepath.Dir(targetPath)
	}
	manifestPath, ok, err := project.FindManifest(startDir)
	if err != nil || !ok {
		return fallback
	}
	manifest, _, err := project.Load(manifestPath)
	if err != nil {
		return fallback
	}
	switch manifest.Fix.Mode {
	case "all":
		return fix.ApplyModeAll
	case "once":
		return fix.ApplyModeOnce
	}
	return fallback
}

func runFixPasses(ctx context.Context, path string, isDir bool, driverOpts driver.Options, opts fix.ApplyOptions) error {
	totalApplied := 0
	for pass := 0; ; pass++ {
		res, applyErr := runFixPass(ctx, path, isDir, driverOpts, opts)

		applied := 0
		if res != nil {
			applied = len(res.Applied)
		}
		totalApplied += applied

		lastPass := opts.Mode != fix.ApplyModeAll || applied == 0 || pass+1 >= maxFixPasses
		if err := reportApplyResult(res, applyErr, totalApplied, lastPass); err != nil {
			return err
		}
		if lastPass {
			return nil
		}
	}
}

func runFixPass(ctx context.Context, path string, isDir bool, driverOpts driver.Options, opts fix.ApplyOptions) (*fix.ApplyResult, error) {
	if !isDir {
		fs, result, err := driver.LintPath(path, driverOpts)
		if err != nil {
			return nil, fmt.Errorf("fix: lint failed: %w", err)
		}
		result.Bag.Sort()
		return fix.Apply(fs, result.Bag.Items(), opts)
	}

	fs, results, err := driver.LintDir(ctx, path, driverOpts)
	if err != nil {
		return nil, fmt.Errorf("fix: lint dir failed: %w", err)
	}
	var diagnostics []diag.Diagnostic
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		r.Bag.Sort()
		diagnostics = append(diagnostics, r.Bag.Items()...)
	}
	return fix.Apply(fs, diagnostics, opts)
}

// reportApplyResult prints one pass's outcome. The summary line is withheld
// until the final pass so repeated --all passes read as one run.
func reportApplyResult(res *fix.ApplyResult, applyErr error, totalApplied int, lastPass bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(os.Stdout, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(os.Stdout, "  %s [%s] at %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
		}
	}

	if len(res.FileChanges) > 0 {
		fmt.Fprintln(os.Stdout, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(os.Stdout, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 && lastPass {
		fmt.Fprintln(os.Stdout, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(os.Stdout, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(os.Stdout, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			if lastPass && totalApplied == 0 {
				fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			}
			return nil
		}
		return applyErr
	}

	if lastPass && totalApplied == 0 && len(res.Applied) == 0 {
		fmt.Fprintln(os.Stdout, "No fixes applied.")
	}
	return nil
}
