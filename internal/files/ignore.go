package files

import (
	"bufio"
	"os"
	"strings"
)

// AppendIgnore ensures each pattern is present as a line in the ignore file
// at path. It creates the file if missing and terminates a final line that
// lacks a newline before appending. Idempotent. It returns the patterns that
// were added.
func AppendIgnore(path string, patterns ...string) ([]string, error) {
	existing := map[string]bool{}
	needsNewline := false
	if b, err := os.ReadFile(path); err == nil {
		sc := bufio.NewScanner(strings.NewReader(string(b)))
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		needsNewline = len(b) > 0 && b[len(b)-1] != '\n'
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	var added []string
	var sb strings.Builder
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || existing[p] {
			continue
		}
		existing[p] = true
		added = append(added, p)
		sb.WriteString(p + "\n")
	}
	if len(added) == 0 {
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if needsNewline {
		if _, err := f.WriteString("\n"); err != nil {
			return nil, err
		}
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		return nil, err
	}
	return added, nil
}
