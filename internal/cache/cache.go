package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DB remembers files that scanned clean. Entries map a path relative to the
// scan root to the content hash it had when it produced zero findings; a file
// whose hash still matches can be skipped. RuleSet fingerprints the active
// rules so a different --enable/--disable selection invalidates everything.
type DB struct {
	RuleSet string            `json:"rule_set"`
	Entries map[string]string `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "lingomirrorcache.json")
	}
	return filepath.Join(root, ".lingomirrorcache.json")
}

// Load reads the cache for root. The returned DB always has a non-nil map;
// when ruleSet differs from the stored fingerprint the entries are dropped.
func Load(root, ruleSet string) (DB, error) {
	db := DB{RuleSet: ruleSet, Entries: map[string]string{}}
	b, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return db, err
	}
	var stored DB
	if err := json.Unmarshal(b, &stored); err != nil {
		return db, fmt.Errorf("decode cache: %w", err)
	}
	if stored.RuleSet != ruleSet || stored.Entries == nil {
		return db, nil
	}
	db.Entries = stored.Entries
	return db, nil
}

// Clean reports whether path is recorded clean at hash.
func (db DB) Clean(path, hash string) bool {
	return db.Entries != nil && db.Entries[path] == hash
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(defaultPath(root), b, 0644)
}
