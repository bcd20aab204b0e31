package rules

import "github.com/lingomirror/lingomirror/internal/types"

// The variant group is optional, so a bare `rounded-l` also matches. A
// neighbouring word byte (as in `rounded-lg`) is rejected by tokenEnds.
const radiusVariant = `(?:-(?:\w+|` + arbitrary + `))?`

var (
	RoundedLeft  = newRule("rounded-left", "rounded-l", "rounded-s", radiusVariant, types.SevWarning, "rounded-l-lg")
	RoundedRight = newRule("rounded-right", "rounded-r", "rounded-e", radiusVariant, types.SevWarning, "rounded-r-md")
)
