package lingomirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/lingomirror/lingomirror/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagThreads         int
	flagNoColor         bool
	flagNoCache         bool
	flagDefaultExcludes bool
	flagNoUpdateCheck   bool
	flagLogLevel        string
	flagLogJSON         bool

	version = "0.1.0"

	logger = zap.NewNop()
)

// rootCmd is the base Cobra command for the LingoMirror CLI.
var rootCmd = &cobra.Command{
	Use:   "lingomirror",
	Short: "Find physical direction utilities that break RTL layouts",
	Long: "LingoMirror audits markup and stylesheets for physical left/right Tailwind utilities " +
		"(ml-4, text-left, rounded-r-lg, ...) and rewrites them to their logical start/end counterparts.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		l, err := logging.New(flagLogLevel, flagLogJSON)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

// exitError carries a process exit code without an error message, used when
// findings cross the --fail-on threshold.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// Execute runs the LingoMirror CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the clean-file scan cache")
	rootCmd.PersistentFlags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, minified bundles, etc.)")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "diagnostic log level: debug|info|warn|error (default warn)")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "emit diagnostic logs as JSON")
	rootCmd.Version = version
}
