package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnoreMatch(t *testing.T) {
	dir := t.TempDir()
	ig := filepath.Join(dir, ".lingomirrorignore")
	content := "node_modules/\n*.min.html\n# comment\n\nlegacy/**/*.tsx\nsrc/vendor.css\n"
	if err := os.WriteFile(ig, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(ig)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"node_modules/pkg/index.js":   true,
		"web/node_modules/a/b.tsx":    true,
		"public/landing.min.html":     true,
		"legacy/pages/deep/Home.tsx":  true,
		"src/vendor.css":              true,
		`src\vendor.css`:              true,
		"src/app.tsx":                 false,
		"legacy/pages/deep/Home.vue":  false,
		"node_modules_backup/app.tsx": false,
	}
	for p, want := range cases {
		if got := m.Match(p); got != want {
			t.Fatalf("Match(%q)=%v want %v", p, got, want)
		}
	}
	if m.Len() != 4 {
		t.Fatalf("expected 4 patterns, got %d", m.Len())
	}
}

func TestLoad_Missing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if m.Match("anything.tsx") {
		t.Fatal("empty matcher must not match")
	}
}

func TestNew(t *testing.T) {
	m := New(" ", "*.snap", "")
	if !m.Match("a/b/c.snap") || m.Len() != 1 {
		t.Fatalf("unexpected matcher state: %+v", m)
	}
}

func TestMerge(t *testing.T) {
	m := Merge(New("*.snap"), New("legacy/"))
	if !m.Match("a.snap") || !m.Match("legacy/x.tsx") || m.Match("src/x.tsx") {
		t.Fatalf("merged matcher mismatch: %+v", m)
	}
}
