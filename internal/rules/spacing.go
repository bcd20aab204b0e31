package rules

import "github.com/lingomirror/lingomirror/internal/types"

// Margin and padding utilities. These always flip in RTL, so they are errors.
var (
	MarginLeft   = newRule("margin-left", "ml-", "ms-", sizeExpr, types.SevError, "ml-4")
	MarginRight  = newRule("margin-right", "mr-", "me-", sizeExpr, types.SevError, "mr-4")
	PaddingLeft  = newRule("padding-left", "pl-", "ps-", sizeExpr, types.SevError, "pl-2")
	PaddingRight = newRule("padding-right", "pr-", "pe-", sizeExpr, types.SevError, "pr-2")
)
