package lingomirror

import (
	"fmt"
	"io"

	"github.com/lingomirror/lingomirror/internal/engine"
	"github.com/lingomirror/lingomirror/internal/report"
	"github.com/spf13/cobra"
)

var (
	flagCheckFix      bool
	flagCheckFilename string
	flagCheckFormat   string
	flagCheckFailOn   string
	flagCheckEnable   string
	flagCheckDisable  string
)

func init() {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Scan text from stdin",
		Long:  "Check scans standard input. With --fix it prints the fixed text instead of findings.",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagCheckFix, "fix", false, "print the fixed text to stdout")
	cmd.Flags().StringVar(&flagCheckFilename, "stdin-filename", "", "path reported for findings")
	cmd.Flags().StringVar(&flagCheckFormat, "format", "text", "output format: table|text|json|sarif")
	cmd.Flags().StringVar(&flagCheckFailOn, "fail-on", "error", "exit 1 when findings reach error|warning|none")
	cmd.Flags().StringVar(&flagCheckEnable, "enable", "", "only run these rules (comma-separated IDs)")
	cmd.Flags().StringVar(&flagCheckDisable, "disable", "", "disable these rules (comma-separated IDs)")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	failOn, err := report.ParseFailOn(flagCheckFailOn)
	if err != nil {
		return err
	}
	sc, err := engine.NewScanner(engine.Config{EnableRules: flagCheckEnable, DisableRules: flagCheckDisable})
	if err != nil {
		return err
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	text := string(b)
	out := cmd.OutOrStdout()

	if flagCheckFix {
		fixed, _, _ := engine.FixText(sc, text)
		_, err := io.WriteString(out, fixed)
		return err
	}

	findings := engine.FilterSuppressed(text, sc.Scan(text))
	for i := range findings {
		findings[i].Path = flagCheckFilename
	}
	opts := report.PrintOptions{NoColor: flagNoColor || !isTerminal(out)}
	if err := writeFindings(out, flagCheckFormat, findings, opts); err != nil {
		return err
	}
	if report.ShouldFail(findings, failOn) {
		return exitError{code: 1}
	}
	return nil
}
