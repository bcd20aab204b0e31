package lingomirror

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lingomirror/lingomirror/internal/config"
	"github.com/lingomirror/lingomirror/internal/engine"
	"github.com/lingomirror/lingomirror/internal/logging"
	"github.com/lingomirror/lingomirror/internal/report"
	"github.com/spf13/cobra"
)

const defaultMaxBytes = 1 << 20

// scopeFlags are the file-selection flags shared by commands that walk a tree.
type scopeFlags struct {
	path     string
	include  string
	exclude  string
	enable   string
	disable  string
	maxBytes int64
	changed  bool
}

func (s *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.path, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&s.include, "include", "", "comma-separated include globs (replace the default extension filter)")
	cmd.Flags().StringVar(&s.exclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&s.maxBytes, "max-bytes", 0, "skip files larger than this (default 1MiB)")
	cmd.Flags().StringVar(&s.enable, "enable", "", "only run these rules (comma-separated IDs)")
	cmd.Flags().StringVar(&s.disable, "disable", "", "disable these rules (comma-separated IDs)")
	cmd.Flags().BoolVar(&s.changed, "changed", false, "only scan files changed in the git working tree")
}

// layers holds the local and global config files; CLI flags win over local,
// local over global.
type layers struct {
	local, global config.FileConfig
}

func loadLayers(root string) (layers, error) {
	var l layers
	var err error
	if l.global, err = config.LoadGlobal(); err != nil && !errors.Is(err, config.ErrNotFound) {
		return l, fmt.Errorf("global config: %w", err)
	}
	if l.local, err = config.LoadLocal(root); err != nil && !errors.Is(err, config.ErrNotFound) {
		return l, fmt.Errorf("local config: %w", err)
	}
	return l, nil
}

func (l layers) format(cli string) string {
	if f := pickString(cli, l.local.Format, l.global.Format); f != "" {
		return f
	}
	return "table"
}

func (l layers) failOn(cli string) (string, error) {
	return report.ParseFailOn(pickString(cli, l.local.FailOn, l.global.FailOn))
}

func (l layers) baselinePath(root, cli string) string {
	p := pickString(cli, l.local.Baseline, l.global.Baseline)
	if p == "" {
		p = report.DefaultBaselinePath
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	return p
}

func (l layers) noColor() bool {
	return pickBool(flagNoColor, l.local.NoColor, l.global.NoColor)
}

// resolve builds the engine configuration from flags and config files. It
// also applies a configured log level when --log-level was not given.
func (s *scopeFlags) resolve() (engine.Config, layers, error) {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return engine.Config{}, layers{}, fmt.Errorf("resolve path %s: %w", s.path, err)
	}
	l, err := loadLayers(abs)
	if err != nil {
		return engine.Config{}, l, err
	}
	if flagLogLevel == "" {
		if lvl := pickString("", l.local.LogLevel, l.global.LogLevel); lvl != "" {
			lg, err := logging.New(lvl, flagLogJSON)
			if err != nil {
				return engine.Config{}, l, err
			}
			logger = lg
		}
	}

	defaultExcludes := flagDefaultExcludes
	if !rootCmd.PersistentFlags().Changed("default-excludes") {
		switch {
		case l.local.DefaultExcludes != nil:
			defaultExcludes = *l.local.DefaultExcludes
		case l.global.DefaultExcludes != nil:
			defaultExcludes = *l.global.DefaultExcludes
		}
	}
	maxBytes := pickInt64(s.maxBytes, l.local.MaxBytes, l.global.MaxBytes)
	if maxBytes == 0 {
		maxBytes = defaultMaxBytes
	}

	cfg := engine.Config{
		Root:            abs,
		IncludeGlobs:    pickString(s.include, l.local.Include, l.global.Include),
		ExcludeGlobs:    pickString(s.exclude, l.local.Exclude, l.global.Exclude),
		IgnorePatterns:  append(append([]string{}, l.global.Ignore...), l.local.Ignore...),
		Extensions:      pickExtensions(l.local.Extensions, l.global.Extensions),
		MaxBytes:        maxBytes,
		Threads:         pickInt(flagThreads, l.local.Threads, l.global.Threads),
		EnableRules:     pickString(s.enable, l.local.Enable, l.global.Enable),
		DisableRules:    pickString(s.disable, l.local.Disable, l.global.Disable),
		DefaultExcludes: defaultExcludes,
		Changed:         s.changed,
		NoCache:         flagNoCache,
		Logger:          logger,
	}
	return cfg, l, nil
}

// pickExtensions returns the first non-empty extension list, normalized to
// lowercase with a leading dot. Nil means the engine defaults.
func pickExtensions(lists ...[]string) []string {
	for _, list := range lists {
		if len(list) == 0 {
			continue
		}
		out := make([]string, 0, len(list))
		for _, e := range list {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			out = append(out, e)
		}
		return out
	}
	return nil
}
