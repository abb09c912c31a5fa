package noqa

import "regexp"

// Kind tags a pattern's outcome.
type Kind int

const (
	Defect Kind = iota
	ValidCodes
	ValidBlanket
)

func (k Kind) String() string {
	switch k {
	case Defect:
		return "defect"
	case ValidCodes:
		return "valid-codes"
	default:
		return "valid-blanket"
	}
}

// exactly one space, then something that is not whitespace
var singleSpaceRe = regexp.MustCompile(`^ \S`)

// InlinePattern is one row of the line-annotation grammar.
type InlinePattern struct {
	Name  string
	ID    string // diagnostic code for defect rows; empty for valid rows
	Kind  Kind
	Match func(c *InlineComment) bool
}

// FilePattern is one row of the file-directive grammar.
type FilePattern struct {
	Name  string
	ID    string
	Kind  Kind
	Match func(f *FileComment) bool
}

// InlinePatterns is the line-annotation grammar as an ordered table.
// Classification takes the first row that matches, so the order is part of
// the contract: specific defect shapes first, the blanket catch-all last.
// Appending rows is safe; reordering or renumbering existing rows is not.
var InlinePatterns = []InlinePattern{
	{
		Name: "bad-hash-space", ID: BadHashSpace, Kind: Defect,
		Match: func(c *InlineComment) bool { return !singleSpaceRe.MatchString(c.Noqa) },
	},
	{
		Name: "missing-colon", ID: MissingColon, Kind: Defect,
		Match: func(c *InlineComment) bool { return c.Codes != "" && c.Sep == "" },
	},
	{
		Name: "bad-code-space", ID: BadCodeSpace, Kind: Defect,
		Match: func(c *InlineComment) bool {
			lead := leadingWS(c.Codes)
			return c.Codes != "" && lead != "" && lead != " "
		},
	},
	{
		Name: "bad-colon-space", ID: BadColonSpace, Kind: Defect,
		Match: func(c *InlineComment) bool { return c.Codes != "" && c.Sep != ":" },
	},
	{
		Name: "coded", Kind: ValidCodes,
		Match: func(c *InlineComment) bool { return c.Codes != "" },
	},
	{
		Name: "blanket", Kind: ValidBlanket,
		Match: func(c *InlineComment) bool { return true },
	},
}

// FilePatterns is the file-directive grammar. Same ordering contract as
// InlinePatterns. The file form has no coded variant: a directive either
// suppresses the whole file or is malformed.
var FilePatterns = []FilePattern{
	{
		Name: "file-bad-hash-space", ID: FileBadHashSpace, Kind: Defect,
		Match: func(f *FileComment) bool { return !singleSpaceRe.MatchString(f.Flake8) },
	},
	{
		Name: "file-missing-colon", ID: FileMissingColon, Kind: Defect,
		Match: func(f *FileComment) bool { return f.Sep == "" },
	},
	{
		Name: "file-bad-colon-space", ID: FileBadColonSpace, Kind: Defect,
		Match: func(f *FileComment) bool { return f.Sep != ":" && f.Sep != "=" },
	},
	{
		Name: "file-blanket", Kind: ValidBlanket,
		Match: func(f *FileComment) bool { return true },
	},
}

// ClassifyInline returns the first matching row. The blanket row matches
// everything, so the result is never nil for a captured comment.
func ClassifyInline(c *InlineComment) *InlinePattern {
	for i := range InlinePatterns {
		if InlinePatterns[i].Match(c) {
			return &InlinePatterns[i]
		}
	}
	return nil
}

func ClassifyFile(f *FileComment) *FilePattern {
	for i := range FilePatterns {
		if FilePatterns[i].Match(f) {
			return &FilePatterns[i]
		}
	}
	return nil
}

// PatternInfo is the read-only inventory row exposed over the API.
type PatternInfo struct {
	Family string `json:"family"` // "line" | "file"
	Name   string `json:"name"`
	ID     string `json:"id,omitempty"`
	Kind   string `json:"kind"`
}

// Inventory lists both grammar tables in evaluation order.
func Inventory() []PatternInfo {
	out := make([]PatternInfo, 0, len(InlinePatterns)+len(FilePatterns))
	for _, p := range InlinePatterns {
		out = append(out, PatternInfo{Family: "line", Name: p.Name, ID: p.ID, Kind: p.Kind.String()})
	}
	for _, p := range FilePatterns {
		out = append(out, PatternInfo{Family: "file", Name: p.Name, ID: p.ID, Kind: p.Kind.String()})
	}
	return out
}

func leadingWS(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}
