package engine

import (
	"context"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/lingomirror/lingomirror/internal/git"
	"github.com/lingomirror/lingomirror/internal/ignore"
	"go.uber.org/zap"
)

// Walk traverses the working tree and invokes handle for each eligible file.
// Paths passed to handle are relative to cfg.Root and slash separated.
func Walk(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(path string, data []byte)) error {
	cfg = normalize(cfg)
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			cfg.Logger.Debug("walk error", zap.String("path", p), zap.Error(err))
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if p == cfg.Root {
				return nil
			}
			if cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			if ign.Match(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		var size int64 = -1
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}
		if !eligible(rel, size, cfg, ign) {
			return nil
		}
		if b, ok := readTarget(p, rel, cfg); ok {
			handle(rel, b)
		}
		return nil
	})
}

// WalkChanged behaves like Walk but only visits files git reports as changed
// in the index or work tree.
func WalkChanged(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(path string, data []byte)) error {
	cfg = normalize(cfg)
	files, err := git.ChangedFiles(cfg.Root)
	if err != nil {
		return err
	}
	for _, rel := range files {
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		if cfg.DefaultExcludes && inDefaultExcludedDir(rel) {
			continue
		}
		p := filepath.Join(cfg.Root, filepath.FromSlash(rel))
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if !eligible(rel, info.Size(), cfg, ign) {
			continue
		}
		if b, ok := readTarget(p, rel, cfg); ok {
			handle(rel, b)
		}
	}
	return nil
}

// CountTargets estimates the number of files to process based on cfg without
// reading file contents.
func CountTargets(cfg Config) (int, error) {
	cfg = normalize(cfg)
	ign := loadIgnore(cfg)
	if cfg.Changed {
		files, err := git.ChangedFiles(cfg.Root)
		if err != nil {
			return 0, err
		}
		n := 0
		for _, rel := range files {
			if cfg.DefaultExcludes && inDefaultExcludedDir(rel) {
				continue
			}
			if eligible(rel, -1, cfg, ign) {
				n++
			}
		}
		return n, nil
	}
	count := 0
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if p != cfg.Root && ((cfg.DefaultExcludes && isDefaultDirExcluded(d.Name())) || ign.Match(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		var size int64 = -1
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}
		if d.Type().IsRegular() && eligible(rel, size, cfg, ign) {
			count++
		}
		return nil
	})
	return count, err
}

// eligible applies every name and size based filter. size < 0 means unknown.
func eligible(rel string, size int64, cfg Config, ign ignore.Matcher) bool {
	if !allowedByGlobs(rel, cfg) {
		return false
	}
	if ign.Match(rel) {
		return false
	}
	if cfg.MaxBytes > 0 && size > cfg.MaxBytes {
		return false
	}
	if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
		return false
	}
	return true
}

// readTarget loads a file and rejects binary content and files carrying the
// ignore-file directive.
func readTarget(p, rel string, cfg Config) ([]byte, bool) {
	b, err := os.ReadFile(p)
	if err != nil {
		cfg.Logger.Warn("read failed", zap.String("path", rel), zap.Error(err))
		return nil, false
	}
	if looksBinary(b) {
		return nil, false
	}
	// .ts is registered as video/mp2t on many systems
	if !hasTargetExtension(rel, DefaultExtensions) && looksNonTextMIME(rel, b) {
		return nil, false
	}
	if HasIgnoreFileDirective(string(b)) {
		cfg.Logger.Debug("file ignored by directive", zap.String("path", rel))
		return nil, false
	}
	return b, true
}

func looksBinary(b []byte) bool {
	const sniff = 800
	n := sniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// looksNonTextMIME uses the file extension and a tiny content sniff to skip
// clearly non-text content (e.g., images) in addition to NUL-byte detection.
func looksNonTextMIME(path string, b []byte) bool {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		if strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/") || strings.HasPrefix(ct, "audio/") {
			return true
		}
		if strings.Contains(ct, "zip") || strings.Contains(ct, "tar") || strings.Contains(ct, "gzip") {
			return true
		}
	}
	if len(b) >= 8 && string(b[:8]) == "\x89PNG\r\n\x1a\n" {
		return true
	}
	if len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4 {
		return true
	}
	return false
}
