package lingomirror

import (
	"fmt"
	"strings"

	"github.com/lingomirror/lingomirror/internal/config"
	"github.com/lingomirror/lingomirror/internal/rules"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput          string
	cfgForce           bool
	cfgGlobal          bool
	cfgEnable          string
	cfgDisable         string
	cfgThreads         int
	cfgMaxBytes        int64
	cfgNoColor         bool
	cfgDefaultExcludes bool
	cfgFailOn          string
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .lingomirror.yml with selected rules and options",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".lingomirror.yml", "output file path")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().BoolVar(&cfgGlobal, "global", false, "write the global config instead of a local one")
	initCmd.Flags().StringVar(&cfgEnable, "enable", "", "comma-separated rule IDs to enable")
	initCmd.Flags().StringVar(&cfgDisable, "disable", "", "comma-separated rule IDs to disable")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 0, "worker threads (0=GOMAXPROCS)")
	initCmd.Flags().Int64Var(&cfgMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgDefaultExcludes, "default-excludes", true, "enable default ignore patterns")
	initCmd.Flags().StringVar(&cfgFailOn, "fail-on", "error", "default --fail-on threshold")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration for a path",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			l, err := loadLayers(root)
			if err != nil {
				return err
			}
			b, err := yaml.Marshal(merge(l.local, l.global))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
		Args: cobra.MaximumNArgs(1),
	}
	cfgCmd.AddCommand(showCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, err := rules.Select(cfgEnable, cfgDisable); err != nil {
		return err
	}
	fc := config.Default()
	fc.MaxBytes = int64Ptr(cfgMaxBytes)
	fc.Enable = optStrPtr(cfgEnable)
	fc.Disable = optStrPtr(cfgDisable)
	fc.Threads = intPtr(cfgThreads)
	fc.NoColor = boolPtr(cfgNoColor)
	fc.DefaultExcludes = boolPtr(cfgDefaultExcludes)
	fc.FailOn = strPtr(cfgFailOn)
	if err := fc.Validate(); err != nil {
		return err
	}

	out := cfgOutput
	if cfgGlobal {
		out = config.GlobalPath()
		if out == "" {
			return fmt.Errorf("cannot determine global config directory")
		}
	}
	if err := config.Write(out, fc, cfgForce); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", out)
	return nil
}

// merge overlays local on global field by field.
func merge(local, global config.FileConfig) config.FileConfig {
	out := global
	if local.Include != nil {
		out.Include = local.Include
	}
	if local.Exclude != nil {
		out.Exclude = local.Exclude
	}
	if len(local.Extensions) > 0 {
		out.Extensions = local.Extensions
	}
	out.Ignore = append(append([]string{}, global.Ignore...), local.Ignore...)
	if local.MaxBytes != nil {
		out.MaxBytes = local.MaxBytes
	}
	if local.Enable != nil {
		out.Enable = local.Enable
	}
	if local.Disable != nil {
		out.Disable = local.Disable
	}
	if local.Threads != nil {
		out.Threads = local.Threads
	}
	if local.NoColor != nil {
		out.NoColor = local.NoColor
	}
	if local.DefaultExcludes != nil {
		out.DefaultExcludes = local.DefaultExcludes
	}
	if local.Format != nil {
		out.Format = local.Format
	}
	if local.FailOn != nil {
		out.FailOn = local.FailOn
	}
	if local.Baseline != nil {
		out.Baseline = local.Baseline
	}
	if local.LogLevel != nil {
		out.LogLevel = local.LogLevel
	}
	return out
}

func strPtr(s string) *string { return &s }
func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }
