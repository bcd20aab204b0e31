package rules

import "github.com/lingomirror/lingomirror/internal/types"

// Positioning utilities additionally accept `full` and simple fractions.
var (
	InsetLeft  = newRule("inset-left", "left-", "start-", posExpr, types.SevWarning, "left-1/2")
	InsetRight = newRule("inset-right", "right-", "end-", posExpr, types.SevWarning, "right-0")
)
