package lingomirror

import (
	"fmt"

	"github.com/lingomirror/lingomirror/internal/engine"
	"github.com/lingomirror/lingomirror/internal/report"
	"github.com/spf13/cobra"
)

var (
	baselineScope scopeFlags
	flagBaseOut   string
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Update baseline from current scan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, l, err := baselineScope.resolve()
			if err != nil {
				return err
			}
			results, err := engine.Scan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			path := l.baselinePath(cfg.Root, flagBaseOut)
			if err := report.SaveBaseline(path, results); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %d finding(s) in %s\n", len(results), path)
			return nil
		},
	}
	baselineScope.register(update)
	update.Flags().StringVar(&flagBaseOut, "baseline", "", "baseline file (default "+report.DefaultBaselinePath+")")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}
