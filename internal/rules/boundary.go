package rules

// Size suffixes shared by the spacing rules. Fractional steps come before
// plain integers so that `ml-1.5` is taken whole instead of as `ml-1`.
const (
	arbitrary = `\[[^\]\s]+\]`
	sizeExpr  = `(?:0\.5|1\.5|2\.5|3\.5|\d+|auto|px|` + arbitrary + `)`
	posExpr   = `(?:0\.5|1\.5|2\.5|3\.5|1/2|1/3|2/3|1/4|3/4|\d+|auto|px|full|` + arbitrary + `)`
)

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// tokenStarts reports whether a match at start begins a class token. The
// pattern already anchors on a word boundary; a hyphen in front is only
// accepted as a negative-value prefix (`-ml-4`), not as the tail of a longer
// class such as `scroll-ml-4`.
func tokenStarts(line string, start int) bool {
	if start == 0 {
		return true
	}
	prev := line[start-1]
	if isWordByte(prev) {
		return false
	}
	if prev != '-' {
		return true
	}
	if start == 1 {
		return true
	}
	before := line[start-2]
	return !isWordByte(before) && before != '-'
}

// tokenEnds reports whether a match ending at end covers the whole token,
// so `rounded-l` never matches the front of `rounded-lg` and `ml-1` never
// matches the front of `ml-1.25`.
func tokenEnds(line string, end int) bool {
	if end >= len(line) {
		return true
	}
	next := line[end]
	return !isWordByte(next) && next != '.' && next != '/'
}
