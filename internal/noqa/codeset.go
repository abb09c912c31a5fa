package noqa

import "sort"

// CodeSet is the set of violation codes reported for one line (or, for the
// file directive check, one file). Duplicates collapse; order is irrelevant.
type CodeSet map[string]struct{}

func NewCodeSet(codes ...string) CodeSet {
	s := make(CodeSet, len(codes))
	for _, c := range codes {
		s.Add(c)
	}
	return s
}

// Add inserts a code. Codes owned by this validator are dropped: they must
// never become matchable, or a malformed annotation could absorb the
// diagnostic reporting its own malformation.
func (s CodeSet) Add(code string) {
	if code == "" || Owns(code) {
		return
	}
	s[code] = struct{}{}
}

// Has is an exact, case-sensitive membership test.
func (s CodeSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

func (s CodeSet) Len() int { return len(s) }

func (s CodeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
