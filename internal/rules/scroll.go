package rules

import "github.com/lingomirror/lingomirror/internal/types"

var (
	ScrollMarginLeft   = newRule("scroll-margin-left", "scroll-ml-", "scroll-ms-", sizeExpr, types.SevWarning, "scroll-ml-4")
	ScrollMarginRight  = newRule("scroll-margin-right", "scroll-mr-", "scroll-me-", sizeExpr, types.SevWarning, "scroll-mr-4")
	ScrollPaddingLeft  = newRule("scroll-padding-left", "scroll-pl-", "scroll-ps-", sizeExpr, types.SevWarning, "scroll-pl-6")
	ScrollPaddingRight = newRule("scroll-padding-right", "scroll-pr-", "scroll-pe-", sizeExpr, types.SevWarning, "scroll-pr-6")
)
