package lingomirror

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lingomirror/lingomirror/internal/report"
	"github.com/lingomirror/lingomirror/internal/rules"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<div className="ml-4 text-left">
  <span className="pr-2 rounded-lg">x</span>
</div>
`

// resetFlags restores every flag to its default so commands can run
// repeatedly in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CI", "1")
	resetFlags(rootCmd)
	var out, errb bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errb)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errb.String(), err
}

func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.tsx"), []byte(page), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ml-4"), 0644))
	return dir
}

func exitCode(err error) int {
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if err != nil {
		return 2
	}
	return 0
}

func TestScan_JSONAndExitCode(t *testing.T) {
	dir := project(t)
	out, _, err := run(t, "", "scan", "--json", "-p", dir)
	assert.Equal(t, 1, exitCode(err))

	var env report.Envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env), out)
	require.Len(t, env.Findings, 3)
	assert.Equal(t, "page.tsx", env.Findings[0].Path)
	assert.Equal(t, "ml-4", env.Findings[0].Original)
	assert.Equal(t, 17, env.Findings[0].Column)
	assert.Equal(t, 2, env.Stats.Errors)
	assert.Equal(t, 1, env.Stats.Warnings)
	assert.Equal(t, 1, env.FilesScanned)
}

func TestScan_FailOnNone(t *testing.T) {
	dir := project(t)
	out, _, err := run(t, "", "scan", "--fail-on", "none", "--no-cache", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "margin-left")
	assert.Contains(t, out, "page.tsx:1:17")
}

func TestScan_FailOnWarning(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.html"), []byte(`<p class="text-right">`), 0644))

	_, _, err := run(t, "", "scan", "--format", "text", "-p", dir)
	require.NoError(t, err, "warnings alone pass the default threshold")

	_, _, err = run(t, "", "scan", "--format", "text", "--fail-on", "warning", "-p", dir)
	assert.Equal(t, 1, exitCode(err))
}

func TestScan_Clean(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.html"), []byte(`<p class="ms-4 text-start">`), 0644))
	out, stderr, err := run(t, "", "scan", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No physical direction utilities found")
	assert.Contains(t, stderr, "with 16 rules")
}

func TestScan_SARIF(t *testing.T) {
	dir := project(t)
	out, _, err := run(t, "", "scan", "--sarif", "--fail-on", "none", "-p", dir)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc), out)
	assert.Equal(t, "2.1.0", doc["version"])
}

func TestScan_UnknownRule(t *testing.T) {
	dir := project(t)
	_, _, err := run(t, "", "scan", "--enable", "margin-top", "-p", dir)
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
	assert.Contains(t, err.Error(), "margin-top")
}

func TestScan_EnableSubset(t *testing.T) {
	dir := project(t)
	out, _, err := run(t, "", "scan", "--json", "--enable", "text-left", "-p", dir)
	require.NoError(t, err)

	var env report.Envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	require.Len(t, env.Findings, 1)
	assert.Equal(t, "text-left", env.Findings[0].Rule)
}

func TestScan_LocalConfig(t *testing.T) {
	dir := project(t)
	cfg := "format: json\nfail_on: none\nignore:\n  - page.tsx\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lingomirror.yml"), []byte(cfg), 0644))

	out, _, err := run(t, "", "scan", "-p", dir)
	require.NoError(t, err)
	var env report.Envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env), out)
	assert.Empty(t, env.Findings)
}

func TestScan_InvalidConfig(t *testing.T) {
	dir := project(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lingomirror.yml"), []byte("format: xml\n"), 0644))
	_, _, err := run(t, "", "scan", "-p", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local config")
}

func TestBaseline_HidesAcceptedFindings(t *testing.T) {
	dir := project(t)
	out, _, err := run(t, "", "baseline", "update", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Baseline updated: 3 finding(s)")
	assert.FileExists(t, filepath.Join(dir, report.DefaultBaselinePath))

	_, _, err = run(t, "", "scan", "--json", "-p", dir)
	require.NoError(t, err)

	out, _, err = run(t, "", "scan", "--json", "--all", "-p", dir)
	assert.Equal(t, 1, exitCode(err))
	var env report.Envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Len(t, env.Findings, 3)
}

func TestFix_DryRunThenWrite(t *testing.T) {
	dir := project(t)
	target := filepath.Join(dir, "page.tsx")

	out, _, err := run(t, "", "fix", "--dry-run", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "--- a/page.tsx")
	assert.Contains(t, out, `-<div className="ml-4 text-left">`)
	assert.Contains(t, out, `+<div className="ms-4 text-start">`)
	assert.Contains(t, out, "Would fix 3 finding(s) in 1 file(s)")
	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, page, string(b))

	summary := filepath.Join(t.TempDir(), "summary.json")
	out, _, err = run(t, "", "fix", "--summary", summary, "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Fixed 3 finding(s) in 1 file(s)")

	b, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(b), `<div className="ms-4 text-start">`)
	assert.Contains(t, string(b), `<span className="pe-2 rounded-lg">`)

	raw, err := os.ReadFile(summary)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "fix", doc["action"])
	assert.Equal(t, false, doc["dry_run"])

	_, _, err = run(t, "", "scan", "-p", dir)
	assert.NoError(t, err)
}

func TestCheck_Stdin(t *testing.T) {
	out, _, err := run(t, `<b class="mr-2">`, "check", "--format", "json", "--stdin-filename", "x.html")
	assert.Equal(t, 1, exitCode(err))
	var env report.Envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	require.Len(t, env.Findings, 1)
	assert.Equal(t, "x.html", env.Findings[0].Path)
	assert.Equal(t, "me-2", env.Findings[0].Suggestion)
}

func TestCheck_Fix(t *testing.T) {
	in := "<i class=\"ml-2 ml-2\"></i>\n<i class=\"pl-1\"></i> <!-- lingomirror:ignore -->\n"
	out, _, err := run(t, in, "check", "--fix")
	require.NoError(t, err)
	assert.Equal(t, "<i class=\"ms-2 ms-2\"></i>\n<i class=\"pl-1\"></i> <!-- lingomirror:ignore -->\n", out)
}

func TestRules_ListsEveryRule(t *testing.T) {
	out, _, err := run(t, "", "rules")
	require.NoError(t, err)
	for _, id := range rules.IDs() {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "scroll-ms-4")
}

func TestConfigInit(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".lingomirror.yml")
	out, _, err := run(t, "", "config", "init", "--output", p, "--disable", "text-left")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+p)
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "disable: text-left")

	_, _, err = run(t, "", "config", "init", "--output", p)
	assert.Error(t, err)

	_, _, err = run(t, "", "config", "init", "--output", p, "--force", "--enable", "nope")
	assert.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lingomirror.yml"), []byte("threads: 3\n"), 0644))
	out, _, err := run(t, "", "config", "show", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "threads: 3")
}

func TestCompletion(t *testing.T) {
	out, _, err := run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "lingomirror")

	_, _, err = run(t, "", "completion", "tcsh")
	assert.Error(t, err)
}

func TestIgnore_ExcludesFromScan(t *testing.T) {
	dir := project(t)
	out, _, err := run(t, "", "ignore", "-p", dir, "page.tsx")
	require.NoError(t, err)
	assert.Contains(t, out, "Ignored page.tsx")

	out, _, err = run(t, "", "ignore", "-p", dir, "page.tsx")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to add")

	_, _, err = run(t, "", "scan", "-p", dir)
	assert.NoError(t, err)
}

func TestCheck_CleanJSONIsEmptyList(t *testing.T) {
	out, _, err := run(t, `<div class="ms-4">`, "check", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"findings": []`)
	assert.NotContains(t, out, "null")
}
