package rules

import "github.com/lingomirror/lingomirror/internal/types"

var (
	TextLeft  = newRule("text-left", "text-left", "text-start", "", types.SevWarning, "text-left")
	TextRight = newRule("text-right", "text-right", "text-end", "", types.SevWarning, "text-right")
)
