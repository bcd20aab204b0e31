package lingomirror

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lingomirror/lingomirror/internal/engine"
	"github.com/lingomirror/lingomirror/internal/git"
	"github.com/lingomirror/lingomirror/internal/report"
	"github.com/spf13/cobra"
)

var (
	fixScope    scopeFlags
	flagDryRun  bool
	flagSummary string
)

func init() {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Rewrite physical direction utilities to their logical equivalents",
		Long: "Fix rewrites every eligible file in place. Each file is fixed from a single snapshot " +
			"and is left untouched if it changed on disk while being processed.",
		RunE: runFix,
	}
	rootCmd.AddCommand(cmd)

	fixScope.register(cmd)
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "print a diff of the changes without writing")
	cmd.Flags().StringVar(&flagSummary, "summary", "", "write remediation summary JSON to this path")
}

func runFix(cmd *cobra.Command, _ []string) error {
	cfg, l, err := fixScope.resolve()
	if err != nil {
		return err
	}
	res, err := engine.FixFiles(cmd.Context(), cfg, flagDryRun)
	if err != nil {
		return fmt.Errorf("fix error: %w", err)
	}
	out := cmd.OutOrStdout()
	if flagDryRun {
		report.PrintDiff(out, res.Files, l.noColor() || !isTerminal(out))
	}
	report.PrintFixSummary(out, res, flagDryRun)

	if flagSummary != "" {
		repo, commit, branch := git.RepoMetadata(cfg.Root)
		if err := writeFixSummary(flagSummary, map[string]any{
			"action":    "fix",
			"root":      cfg.Root,
			"repo":      repo,
			"commit":    commit,
			"branch":    branch,
			"dry_run":   flagDryRun,
			"result":    res,
			"timestamp": time.Now().Format(time.RFC3339),
		}); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}

// writeFixSummary writes a JSON summary file for fix actions.
func writeFixSummary(path string, data map[string]any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
