package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	xxhash "github.com/cespare/xxhash/v2"
	"github.com/lingomirror/lingomirror/internal/cache"
	"github.com/lingomirror/lingomirror/internal/ignore"
	"github.com/lingomirror/lingomirror/internal/rules"
	"github.com/lingomirror/lingomirror/internal/scanner"
	"github.com/lingomirror/lingomirror/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// IgnoreFile is the per-root ignore file name.
const IgnoreFile = ".lingomirrorignore"

// Config controls scanning behavior including scope, performance, and filters.
type Config struct {
	Root            string
	IncludeGlobs    string
	ExcludeGlobs    string
	IgnorePatterns  []string
	Extensions      []string
	MaxBytes        int64
	Threads         int
	EnableRules     string
	DisableRules    string
	DefaultExcludes bool
	Changed         bool
	NoCache         bool
	Progress        func()
	Logger          *zap.Logger
}

// Result contains findings and basic scan statistics.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	FilesCached  int
	Duration     time.Duration
}

// RuleIDs returns the IDs of every known rule in declared order.
func RuleIDs() []string {
	return rules.IDs()
}

// Scan runs a scan and returns only findings (without stats).
func Scan(ctx context.Context, cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// ScanWithStats runs a scan and returns findings along with timing and counts.
// Findings are ordered by path, then line.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	var result Result
	cfg = normalize(cfg)
	sc, ruleSet, err := newScanner(cfg)
	if err != nil {
		return result, err
	}

	var db cache.DB
	if cfg.NoCache {
		db.Entries = map[string]string{}
	} else {
		db, _ = cache.Load(cfg.Root, ruleSet)
	}
	clean := map[string]string{}

	started := time.Now()
	var mu sync.Mutex
	err = forEachFile(ctx, cfg, func(rel string, data []byte) {
		h := fastHash(data)
		if !cfg.NoCache && db.Clean(rel, h) {
			mu.Lock()
			result.FilesCached++
			mu.Unlock()
			return
		}
		text := string(data)
		fs := FilterSuppressed(text, sc.Scan(text))
		for i := range fs {
			fs[i].Path = rel
		}
		mu.Lock()
		result.Findings = append(result.Findings, fs...)
		if len(fs) == 0 {
			clean[rel] = h
		}
		mu.Unlock()
	}, func() {
		mu.Lock()
		result.FilesScanned++
		mu.Unlock()
	})
	if err != nil {
		return result, err
	}

	sortFindings(result.Findings)
	if result.Findings == nil {
		result.Findings = []types.Finding{}
	}
	result.Duration = time.Since(started)

	if !cfg.NoCache {
		for k, v := range clean {
			db.Entries[k] = v
		}
		if err := cache.Save(cfg.Root, db); err != nil {
			cfg.Logger.Debug("cache not saved", zap.String("root", cfg.Root), zap.Error(err))
		}
	}
	return result, nil
}

// forEachFile walks the configured targets and runs handle for each eligible
// file on a bounded pool of cfg.Threads goroutines. done runs after every
// handled file, before cfg.Progress.
func forEachFile(ctx context.Context, cfg Config, handle func(rel string, data []byte), done func()) error {
	ign := loadIgnore(cfg)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)

	walk := Walk
	if cfg.Changed {
		walk = WalkChanged
	}
	walkErr := walk(gctx, cfg, ign, func(rel string, data []byte) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			handle(rel, data)
			done()
			if cfg.Progress != nil {
				cfg.Progress()
			}
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return walkErr
}

func normalize(cfg Config) Config {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Extensions == nil {
		cfg.Extensions = DefaultExtensions
	}
	return cfg
}

// NewScanner returns a scanner restricted to the rules cfg enables.
func NewScanner(cfg Config) (*scanner.Scanner, error) {
	sc, _, err := newScanner(cfg)
	return sc, err
}

// newScanner builds a scanner over the enabled rules and returns a
// fingerprint of that selection for the clean-file cache.
func newScanner(cfg Config) (*scanner.Scanner, string, error) {
	rs, err := rules.Select(cfg.EnableRules, cfg.DisableRules)
	if err != nil {
		return nil, "", fmt.Errorf("select rules: %w", err)
	}
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return scanner.New(rs...), strings.Join(ids, ","), nil
}

func loadIgnore(cfg Config) ignore.Matcher {
	ign, err := ignore.Load(filepath.Join(cfg.Root, IgnoreFile))
	if err != nil {
		ign = ignore.New()
	}
	if len(cfg.IgnorePatterns) > 0 {
		ign = ignore.Merge(ign, ignore.New(cfg.IgnorePatterns...))
	}
	return ign
}

func sortFindings(fs []types.Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Path != fs[j].Path {
			return fs[i].Path < fs[j].Path
		}
		if fs[i].Line != fs[j].Line {
			return fs[i].Line < fs[j].Line
		}
		return fs[i].Column < fs[j].Column
	})
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter that replaces the extension filter. Exclude globs are
// subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 {
		if !matchAnyGlob(rp, includes) {
			return false
		}
	} else if !hasTargetExtension(rp, cfg.Extensions) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
