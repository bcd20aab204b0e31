package rules

import "github.com/lingomirror/lingomirror/internal/types"

const borderWidth = `(?:-(?:\d+|` + arbitrary + `))?`

var (
	BorderLeft  = newRule("border-left", "border-l", "border-s", borderWidth, types.SevWarning, "border-l-2")
	BorderRight = newRule("border-right", "border-r", "border-e", borderWidth, types.SevWarning, "border-r")
)
