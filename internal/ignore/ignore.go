package ignore

import (
	"bufio"
	"os"
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Matcher holds patterns read from a .lingomirrorignore file. Patterns follow
// a small gitignore subset: blank lines and '#' comments are skipped, a
// trailing '/' matches a directory and everything under it, and patterns
// without a '/' match against the base name at any depth.
type Matcher struct {
	patterns []string
}

// Load reads path. A missing file yields an empty matcher and the open error.
func Load(p string) (Matcher, error) {
	var m Matcher
	f, err := os.Open(p)
	if err != nil {
		return m, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.patterns = append(m.patterns, line)
	}
	return m, sc.Err()
}

// New builds a matcher from in-memory patterns, e.g. from config.
func New(patterns ...string) Matcher {
	var m Matcher
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			m.patterns = append(m.patterns, p)
		}
	}
	return m
}

// Match reports whether rel (slash or backslash separated, relative to the
// scan root) is ignored.
func (m Matcher) Match(rel string) bool {
	rel = strings.TrimPrefix(strings.ReplaceAll(rel, "\\", "/"), "./")
	base := path.Base(rel)
	for _, p := range m.patterns {
		p = strings.TrimPrefix(p, "/")
		if strings.HasSuffix(p, "/") {
			dir := strings.TrimSuffix(p, "/")
			if rel == dir || strings.HasPrefix(rel, dir+"/") || strings.Contains(rel, "/"+dir+"/") {
				return true
			}
			continue
		}
		if !strings.Contains(p, "/") {
			if ok, _ := doublestar.Match(p, base); ok {
				return true
			}
			continue
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Len is the number of active patterns.
func (m Matcher) Len() int { return len(m.patterns) }

// Merge combines matchers; a path matched by any of them is ignored.
func Merge(ms ...Matcher) Matcher {
	var out Matcher
	for _, m := range ms {
		out.patterns = append(out.patterns, m.patterns...)
	}
	return out
}
