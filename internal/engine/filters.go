package engine

import "strings"

// DefaultExtensions are the markup, template, and stylesheet suffixes scanned
// when no include globs are given.
var DefaultExtensions = []string{
	".html", ".htm",
	".jsx", ".tsx", ".js", ".ts", ".mjs", ".cjs",
	".vue", ".svelte", ".astro",
	".css", ".scss", ".sass", ".less",
	".mdx",
	".php", ".erb", ".twig", ".hbs", ".njk", ".liquid",
}

var defaultExcludeDirs = map[string]bool{
	"node_modules":     true,
	"bower_components": true,
	"vendor":           true,
	"dist":             true,
	"build":            true,
	"out":              true,
	".next":            true,
	".nuxt":            true,
	".svelte-kit":      true,
	".astro":           true,
	".output":          true,
	".vercel":          true,
	".turbo":           true,
	".cache":           true,
	"storybook-static": true,
	"coverage":         true,
}

// suffixes treated as generated or minified output when default excludes enabled
var defaultExcludeFileSuffixes = []string{
	".min.js", ".min.css", ".map",
	".d.ts",
	".bundle.js", ".chunk.js",
}

// defaultExcludeFileNames holds lowercase base names.
var defaultExcludeFileNames = map[string]bool{
	"package-lock.json": true,
	"pnpm-lock.yaml":    true,
	"yarn.lock":         true,
	".ds_store":         true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name] || name == ".git"
}

// inDefaultExcludedDir reports whether any directory segment of rel is
// excluded by default.
func inDefaultExcludedDir(rel string) bool {
	parts := strings.Split(rel, "/")
	for _, dir := range parts[:len(parts)-1] {
		if isDefaultDirExcluded(dir) {
			return true
		}
	}
	return false
}

func isDefaultFileExcluded(lowerRel string) bool {
	for _, s := range defaultExcludeFileSuffixes {
		if strings.HasSuffix(lowerRel, s) {
			return true
		}
	}
	if strings.Contains(lowerRel, ".gen.") {
		return true
	}
	parts := strings.Split(lowerRel, "/")
	return defaultExcludeFileNames[parts[len(parts)-1]]
}

func hasTargetExtension(rel string, exts []string) bool {
	lower := strings.ToLower(rel)
	for _, e := range exts {
		if strings.HasSuffix(lower, strings.ToLower(e)) {
			return true
		}
	}
	return false
}
