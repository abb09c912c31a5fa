package noqa

import "strings"

// Name is the identity prepended to messages when include-name is on.
const Name = "noqalint"

// Prefix marks the diagnostic codes owned by this package. Codes carrying it
// are exempt from suppression and never participate in code matching.
const Prefix = "NQA"

// Diagnostic codes. The numeric bands are load-bearing: 00x are formatting
// defects of line annotations, 01x formatting defects of file directives,
// 10x usage problems. Codes are append-only; a shape keeps its code forever.
const (
	BadHashSpace  = "NQA001"
	MissingColon  = "NQA002"
	BadColonSpace = "NQA003"
	BadCodeSpace  = "NQA004"
	DuplicateCode = "NQA005"

	FileBadHashSpace  = "NQA011"
	FileMissingColon  = "NQA012"
	FileBadColonSpace = "NQA013"

	NoViolations    = "NQA101"
	NoMatchingCodes = "NQA102"
	UnmatchedCodes  = "NQA103"
	RequireCode     = "NQA104"
)

// Owns reports whether code belongs to this validator's band.
func Owns(code string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(code)), Prefix)
}
