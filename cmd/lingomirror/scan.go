package lingomirror

import (
	"fmt"
	"io"
	"os"

	"github.com/lingomirror/lingomirror/internal/engine"
	"github.com/lingomirror/lingomirror/internal/report"
	"github.com/lingomirror/lingomirror/internal/types"
	"github.com/lingomirror/lingomirror/internal/update"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	scanScope    scopeFlags
	flagFormat   string
	flagJSON     bool
	flagSARIF    bool
	flagText     bool
	flagFailOn   string
	flagBaseline string
	flagAll      bool
	flagProgress bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan files for physical direction utilities",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	scanScope.register(cmd)
	cmd.Flags().StringVar(&flagFormat, "format", "", "output format: table|text|json|sarif (default table)")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "shorthand for --format json")
	cmd.Flags().BoolVar(&flagSARIF, "sarif", false, "shorthand for --format sarif")
	cmd.Flags().BoolVar(&flagText, "text", false, "shorthand for --format text")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "exit 1 when findings reach error|warning|none (default error)")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "", "baseline file (default "+report.DefaultBaselinePath+")")
	cmd.Flags().BoolVar(&flagAll, "all", false, "report baselined findings too")
	cmd.Flags().BoolVar(&flagProgress, "progress", true, "show a progress bar when stderr is a terminal")
}

func runScan(cmd *cobra.Command, _ []string) error {
	cfg, l, err := scanScope.resolve()
	if err != nil {
		return err
	}
	format := l.format(outputFormat())
	failOn, err := l.failOn(flagFailOn)
	if err != nil {
		return err
	}
	stderr := cmd.ErrOrStderr()
	stdout := cmd.OutOrStdout()
	human := format == "table" || format == "text"

	if human {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				_, _ = fmt.Fprintf(stderr, "(new version available: v%s)  run 'lingomirror update' to upgrade\n", latest)
			}
		}
		_, _ = fmt.Fprintf(stderr, "Scanning %s with %d rules...\n", cfg.Root, activeRuleCount(cfg))
	}

	var bar *progressbar.ProgressBar
	if human && flagProgress && isTerminal(stderr) {
		if total, err := engine.CountTargets(cfg); err == nil && total > 0 {
			bar = newProgressBar(stderr, total)
			cfg.Progress = func() { _ = bar.Add(1) }
		}
	}
	res, err := engine.ScanWithStats(cmd.Context(), cfg)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	findings := res.Findings
	if !flagAll {
		basePath := l.baselinePath(cfg.Root, flagBaseline)
		base, err := report.LoadBaseline(basePath)
		if err != nil && !os.IsNotExist(err) {
			logger.Warn("baseline ignored", zap.String("path", basePath), zap.Error(err))
		}
		findings = report.FilterNewFindings(findings, base)
	}

	opts := report.PrintOptions{
		NoColor:      l.noColor() || !isTerminal(stdout),
		Duration:     res.Duration,
		FilesScanned: res.FilesScanned,
		FilesCached:  res.FilesCached,
	}
	if err := writeFindings(stdout, format, findings, opts); err != nil {
		return err
	}
	if report.ShouldFail(findings, failOn) {
		return exitError{code: 1}
	}
	return nil
}

func outputFormat() string {
	switch {
	case flagSARIF:
		return "sarif"
	case flagJSON:
		return "json"
	case flagText:
		return "text"
	}
	return flagFormat
}

func writeFindings(w io.Writer, format string, findings []types.Finding, opts report.PrintOptions) error {
	switch format {
	case "sarif":
		if err := report.WriteSARIF(w, findings, version); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case "json":
		return report.WriteJSON(w, findings, opts)
	case "text":
		report.PrintText(w, findings, opts)
	case "table", "":
		return report.PrintTable(w, findings, opts)
	default:
		return fmt.Errorf("unknown format %q (want table, text, json or sarif)", format)
	}
	return nil
}

func activeRuleCount(cfg engine.Config) int {
	sc, err := engine.NewScanner(cfg)
	if err != nil {
		return 0
	}
	return len(sc.Rules())
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
