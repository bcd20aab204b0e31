package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lingomirror/lingomirror/internal/scanner"
	"github.com/lingomirror/lingomirror/internal/types"
	"go.uber.org/zap"
)

// maxFixRounds bounds rescans per file when repeated tokens on one line need
// several passes.
const maxFixRounds = 10

// ErrStale means a file changed on disk between read and write.
var ErrStale = errors.New("file changed since it was read")

// LineChange is one rewritten line. Fixes never add or remove lines, so a
// per-line before/after pair is a complete diff.
type LineChange struct {
	Line   int    `json:"line"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// FileFix describes the fixes applied (or that would be applied) to one file.
type FileFix struct {
	Path    string          `json:"path"`
	Applied []types.Finding `json:"applied"`
	Changes []LineChange    `json:"changes"`
	Written bool            `json:"written"`
}

// SkippedFile is a file whose fixes were not written.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// FixResult aggregates a tree-wide fix run.
type FixResult struct {
	Files        []FileFix     `json:"files"`
	Skipped      []SkippedFile `json:"skipped,omitempty"`
	FilesScanned int           `json:"files_scanned"`
	FixesApplied int           `json:"fixes_applied"`
	Remaining    int           `json:"remaining"`
	Duration     time.Duration `json:"duration"`
}

// FixText rewrites text until no unsuppressed findings remain or a round makes
// no progress. It returns the fixed text, every finding applied across rounds,
// and the unsuppressed findings still present.
func FixText(sc *scanner.Scanner, text string) (string, []types.Finding, []types.Finding) {
	var applied []types.Finding
	for round := 0; round < maxFixRounds; round++ {
		fs := FilterSuppressed(text, sc.Scan(text))
		if len(fs) == 0 {
			return text, applied, nil
		}
		next := scanner.ApplyFixes(text, fs)
		if next == text {
			return text, applied, fs
		}
		applied = append(applied, fs...)
		text = next
	}
	return text, applied, FilterSuppressed(text, sc.Scan(text))
}

// FixFiles applies fixes to every eligible file under cfg.Root. With dryRun
// nothing is written and the result describes what would change. Each file is
// fixed from the snapshot read during the walk and rewritten only if its
// content hash is unchanged at write time.
func FixFiles(ctx context.Context, cfg Config, dryRun bool) (FixResult, error) {
	var res FixResult
	cfg = normalize(cfg)
	sc, _, err := newScanner(cfg)
	if err != nil {
		return res, err
	}

	started := time.Now()
	var mu sync.Mutex
	err = forEachFile(ctx, cfg, func(rel string, data []byte) {
		before := string(data)
		after, applied, remaining := FixText(sc, before)
		mu.Lock()
		res.Remaining += len(remaining)
		mu.Unlock()
		if len(applied) == 0 {
			return
		}
		for i := range applied {
			applied[i].Path = rel
		}
		ff := FileFix{Path: rel, Applied: applied, Changes: lineChanges(before, after)}
		if !dryRun {
			abs := filepath.Join(cfg.Root, filepath.FromSlash(rel))
			if err := writeIfUnchanged(abs, fastHash(data), []byte(after)); err != nil {
				cfg.Logger.Warn("fix not written", zap.String("path", rel), zap.Error(err))
				mu.Lock()
				res.Skipped = append(res.Skipped, SkippedFile{Path: rel, Reason: err.Error()})
				mu.Unlock()
				return
			}
			ff.Written = true
		}
		mu.Lock()
		res.Files = append(res.Files, ff)
		res.FixesApplied += len(applied)
		mu.Unlock()
	}, func() {
		mu.Lock()
		res.FilesScanned++
		mu.Unlock()
	})
	if err != nil {
		return res, err
	}
	sort.Slice(res.Files, func(i, j int) bool { return res.Files[i].Path < res.Files[j].Path })
	sort.Slice(res.Skipped, func(i, j int) bool { return res.Skipped[i].Path < res.Skipped[j].Path })
	res.Duration = time.Since(started)
	return res, nil
}

// writeIfUnchanged rewrites path with data, preserving its mode, unless the
// current content no longer hashes to want.
func writeIfUnchanged(path, want string, data []byte) error {
	cur, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reread: %w", err)
	}
	if fastHash(cur) != want {
		return ErrStale
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func lineChanges(before, after string) []LineChange {
	a := strings.Split(before, "\n")
	b := strings.Split(after, "\n")
	var out []LineChange
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			out = append(out, LineChange{Line: i + 1, Before: a[i], After: b[i]})
		}
	}
	return out
}
