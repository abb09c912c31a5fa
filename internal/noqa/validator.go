package noqa

import (
	"fmt"
	"strings"

	"github.com/codewithboateng/noqalint/internal/ir"
)

// Config is the validator's slice of the run configuration. Loaded once,
// passed by value into every call, never mutated.
type Config struct {
	RequireCode bool // a blanket "# noqa" is flagged; codes must be listed
	IncludeName bool // prefix messages with the tool name
}

// ValidateLine checks a line's annotation, if any, against the grammar and
// against the codes actually reported for that line. Pure: the same
// (line, reported, cfg) triple always yields the same diagnostics. The
// reported set must be complete before the call; violations recorded later
// cannot be matched.
func ValidateLine(line ir.SourceLine, reported CodeSet, cfg Config) []ir.Diagnostic {
	c := MatchInline(CommentText(line))
	if c == nil {
		return nil
	}
	p := ClassifyInline(c)
	switch p.Kind {
	case Defect:
		// A malformed annotation gets exactly one diagnostic and no code
		// matching; its structure is already wrong, so matching against it
		// would mislead.
		return []ir.Diagnostic{newDiag(line, p.ID, inlineDefectMessage(p.ID, c), c.Text(), cfg)}
	case ValidBlanket:
		if cfg.RequireCode {
			return []ir.Diagnostic{newDiag(line, RequireCode, requireCodeMessage(c, reported), c.Text(), cfg)}
		}
		if reported.Len() == 0 {
			return []ir.Diagnostic{newDiag(line, NoViolations,
				fmt.Sprintf(`"%s" has no violations`, c.Text()), c.Text(), cfg)}
		}
		return nil
	default:
		return validateCodes(line, c, reported, cfg)
	}
}

// ValidateFileDirective checks a file-scope directive on the given line
// against the file's aggregate violation set. Callers invoke it at most once
// per file, on the first line carrying a directive.
func ValidateFileDirective(line ir.SourceLine, aggregate CodeSet, cfg Config) []ir.Diagnostic {
	f := MatchFile(CommentText(line))
	if f == nil {
		return nil
	}
	if p := ClassifyFile(f); p.Kind == Defect {
		return []ir.Diagnostic{newDiag(line, p.ID, fileDefectMessage(p.ID, f), f.Text(), cfg)}
	}
	// The file form is blanket-only, so require-code cannot apply: there is
	// no coded variant the author could switch to.
	if aggregate.Len() == 0 {
		return []ir.Diagnostic{newDiag(line, NoViolations,
			fmt.Sprintf(`"%s" has no violations`, f.Text()), f.Text(), cfg)}
	}
	return nil
}

func validateCodes(line ir.SourceLine, c *InlineComment, reported CodeSet, cfg Config) []ir.Diagnostic {
	declared := c.CodeList()

	// Matching works on the set of distinct declared codes; messages keep
	// the declared order.
	seen := make(map[string]bool, len(declared))
	matched := 0
	var unmatched []string
	for _, code := range declared {
		if seen[code] {
			continue
		}
		seen[code] = true
		if reported.Has(code) {
			matched++
		} else {
			unmatched = append(unmatched, code)
		}
	}

	var out []ir.Diagnostic
	if matched == 0 {
		out = append(out, newDiag(line, NoMatchingCodes,
			fmt.Sprintf(`"%s" has no matching violations`, c.Text()), c.Text(), cfg))
	} else if len(unmatched) > 0 {
		noun := "code"
		if len(unmatched) > 1 {
			noun = "codes"
		}
		out = append(out, newDiag(line, UnmatchedCodes,
			fmt.Sprintf(`"%s" has unmatched %s, remove %s`, c.Text(), noun, strings.Join(unmatched, ", ")),
			c.Text(), cfg))
	}

	// Fires regardless of the matching outcome: a repeated code is a defect
	// of the list itself, one entry per extra occurrence.
	if dups := duplicates(declared); len(dups) > 0 {
		out = append(out, newDiag(line, DuplicateCode,
			fmt.Sprintf(`"%s" has duplicate codes, remove %s`, c.Text(), strings.Join(dups, ", ")),
			c.Text(), cfg))
	}
	return out
}

func inlineDefectMessage(id string, c *InlineComment) string {
	noqaStrip := strings.TrimSpace(c.Noqa)
	codesStrip := strings.TrimSpace(c.Codes)
	switch id {
	case BadHashSpace:
		sepCodes := ""
		if c.Codes != "" {
			sepCodes = ": " + codesStrip
		}
		return fmt.Sprintf(`"%s" must have a single space after the hash, e.g. "# %s%s"`,
			c.Text(), noqaStrip, sepCodes)
	case MissingColon:
		return fmt.Sprintf(`"%s" must have a colon, e.g. "# %s: %s"`, c.Text(), noqaStrip, codesStrip)
	case BadColonSpace:
		return fmt.Sprintf(`"%s" must not have a space before the colon, e.g. "# %s: %s"`,
			c.Text(), noqaStrip, codesStrip)
	default: // BadCodeSpace
		return fmt.Sprintf(`"%s" must have at most one space before the codes, e.g. "# %s: %s"`,
			c.Text(), noqaStrip, codesStrip)
	}
}

func fileDefectMessage(id string, f *FileComment) string {
	flakeStrip := strings.TrimSpace(f.Flake8)
	switch id {
	case FileBadHashSpace:
		sep := f.Sep
		if sep == "" {
			sep = ":"
		}
		return fmt.Sprintf(`"%s" must have a single space after the hash, e.g. "# %s%s%s"`,
			f.Text(), flakeStrip, sep, f.Noqa)
	case FileMissingColon:
		return fmt.Sprintf(`"%s" must have a colon or equals, e.g. "# %s:%s"`, f.Text(), flakeStrip, f.Noqa)
	default: // FileBadColonSpace
		name := "equals"
		if strings.Contains(f.Sep, ":") {
			name = "colon"
		}
		return fmt.Sprintf(`"%s" must not have a space before the %s, e.g. "# %s%s%s"`,
			f.Text(), name, flakeStrip, strings.TrimSpace(f.Sep), f.Noqa)
	}
}

func requireCodeMessage(c *InlineComment, reported CodeSet) string {
	codes := "E501"
	if reported.Len() > 0 {
		codes = strings.Join(reported.Sorted(), ", ")
	}
	return fmt.Sprintf(`"%s" must have codes, e.g. "# %s: %s"`, c.Text(), strings.TrimSpace(c.Noqa), codes)
}

func duplicates(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	var dups []string
	for _, c := range codes {
		if seen[c] {
			dups = append(dups, c)
		} else {
			seen[c] = true
		}
	}
	return dups
}

func newDiag(line ir.SourceLine, code, msg, evidence string, cfg Config) ir.Diagnostic {
	if cfg.IncludeName {
		msg = "(" + Name + ") " + msg
	}
	return ir.Diagnostic{
		Line:     line.Num,
		Col:      line.CommentCol,
		Code:     code,
		Severity: "WARNING",
		Message:  msg,
		Evidence: evidence,
	}
}
