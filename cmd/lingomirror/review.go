package lingomirror

import (
	"fmt"
	"os"

	"github.com/lingomirror/lingomirror/internal/engine"
	"github.com/lingomirror/lingomirror/internal/report"
	"github.com/lingomirror/lingomirror/internal/tui"
	"github.com/lingomirror/lingomirror/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reviewScope  scopeFlags
	flagRevBase  string
	flagRevAllBL bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review and fix findings interactively",
		RunE:  runReview,
	}
	rootCmd.AddCommand(cmd)

	reviewScope.register(cmd)
	cmd.Flags().StringVar(&flagRevBase, "baseline", "", "baseline file (default "+report.DefaultBaselinePath+")")
	cmd.Flags().BoolVar(&flagRevAllBL, "all", false, "include baselined findings")
}

func runReview(cmd *cobra.Command, _ []string) error {
	cfg, l, err := reviewScope.resolve()
	if err != nil {
		return err
	}
	sc, err := engine.NewScanner(cfg)
	if err != nil {
		return err
	}
	basePath := l.baselinePath(cfg.Root, flagRevBase)
	base, err := report.LoadBaseline(basePath)
	if err != nil && !os.IsNotExist(err) {
		logger.Warn("baseline ignored", zap.String("path", basePath), zap.Error(err))
	}

	ctx := cmd.Context()
	rescan := func() ([]types.Finding, error) {
		fs, err := engine.Scan(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if flagRevAllBL {
			return fs, nil
		}
		return report.FilterNewFindings(fs, base), nil
	}
	findings, err := rescan()
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	return tui.Run(findings, tui.Options{
		Root:         cfg.Root,
		Scanner:      sc,
		Rescan:       rescan,
		BaselinePath: basePath,
		Baseline:     base,
	})
}
