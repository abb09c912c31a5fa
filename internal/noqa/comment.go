package noqa

import (
	"regexp"

	"github.com/codewithboateng/noqalint/internal/ir"
)

// The capture grammar is deliberately loose: it recognizes every shape that
// was plausibly meant as a suppression annotation, near-misses included, and
// preserves the raw spacing of each part so classification and message
// rendering can work off the exact text the author wrote.
var (
	// groups: 1=keyword (with leading spaces), 2=separator, 3=code list
	inlineRe = regexp.MustCompile(`(?i)#(\s*noqa)\b(\s*:)?(\s*(?:[a-z]+[0-9]+(?:[,\s]+)?)+)?`)

	// groups: 1=keyword (with leading spaces), 2=separator, 3=trailer
	fileRe = regexp.MustCompile(`(?i)^\s*#(\s*flake8)(\s*[:=])?((?:\b|\s*)noqa)`)

	codeSplitRe = regexp.MustCompile(`[,\s]+`)
)

// InlineComment is one recognized line-scope annotation, raw groups intact.
type InlineComment struct {
	Noqa  string // keyword with the spacing that preceded it
	Sep   string // ":" with any spacing before it, or empty
	Codes string // declared code list with its spacing, or empty
}

// MatchInline recognizes a line-scope annotation anywhere in the comment
// text. Only the first occurrence is considered.
func MatchInline(comment string) *InlineComment {
	m := inlineRe.FindStringSubmatch(comment)
	if m == nil {
		return nil
	}
	return &InlineComment{Noqa: m[1], Sep: m[2], Codes: m[3]}
}

// Text reconstructs the annotation as written.
func (c *InlineComment) Text() string {
	return "#" + c.Noqa + c.Sep + c.Codes
}

// CodeList returns the declared codes in order, separators removed.
func (c *InlineComment) CodeList() []string {
	if c.Codes == "" {
		return nil
	}
	var out []string
	for _, code := range codeSplitRe.Split(c.Codes, -1) {
		if code != "" {
			out = append(out, code)
		}
	}
	return out
}

// FileComment is one recognized file-scope directive.
type FileComment struct {
	Flake8 string // keyword with the spacing that preceded it
	Sep    string // ":" or "=" with any spacing before it, or empty
	Noqa   string // trailer with its spacing
}

// MatchFile recognizes a file-scope directive. Unlike the line form it must
// sit at the start of the comment.
func MatchFile(comment string) *FileComment {
	m := fileRe.FindStringSubmatch(comment)
	if m == nil {
		return nil
	}
	return &FileComment{Flake8: m[1], Sep: m[2], Noqa: m[3]}
}

func (f *FileComment) Text() string {
	return "#" + f.Flake8 + f.Sep + f.Noqa
}

// CommentText returns the comment portion of a line, hash included, or ""
// when the line has none.
func CommentText(line ir.SourceLine) string {
	if line.CommentCol <= 0 || line.CommentCol > len(line.Text) {
		return ""
	}
	return line.Text[line.CommentCol-1:]
}
