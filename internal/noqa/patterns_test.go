package noqa

import "testing"

func TestClassifyInline_FirstMatchWins(t *testing.T) {
	cases := []struct {
		comment string
		id      string
		kind    Kind
	}{
		// single-defect shapes
		{"#noqa", BadHashSpace, Defect},
		{"#  noqa", BadHashSpace, Defect},
		{"#\tnoqa", BadHashSpace, Defect},
		{"# noqa E225", MissingColon, Defect},
		{"# noqa E225, E261", MissingColon, Defect},
		{"# noqa:  E225", BadCodeSpace, Defect},
		{"# noqa:\tE225", BadCodeSpace, Defect},
		{"# noqa : E225", BadColonSpace, Defect},

		// multi-defect shapes resolve to the highest-priority row
		{"#noqa E225", BadHashSpace, Defect},
		{"#noqa : E225", BadHashSpace, Defect},
		{"# noqa  E225", MissingColon, Defect},
		{"# noqa  :  E225", BadCodeSpace, Defect},

		// valid shapes
		{"# noqa: E225", "", ValidCodes},
		{"# noqa:E225", "", ValidCodes},
		{"# noqa: E225,   ,  E261  ,  ,   ", "", ValidCodes},
		{"# noqa", "", ValidBlanket},
		{"# noqa:", "", ValidBlanket},
		{"# noqa this is not a code", "", ValidBlanket},
		{"# noqa - X101 is not a code", "", ValidBlanket},
	}
	for _, tc := range cases {
		c := MatchInline(tc.comment)
		if c == nil {
			t.Fatalf("MatchInline(%q) = nil", tc.comment)
		}
		p := ClassifyInline(c)
		if p == nil {
			t.Fatalf("ClassifyInline(%q) = nil", tc.comment)
		}
		if p.ID != tc.id || p.Kind != tc.kind {
			t.Fatalf("ClassifyInline(%q) = (%q, %v); want (%q, %v)", tc.comment, p.ID, p.Kind, tc.id, tc.kind)
		}
	}
}

func TestClassifyFile(t *testing.T) {
	cases := []struct {
		comment string
		id      string
		kind    Kind
	}{
		{"# flake8:noqa", "", ValidBlanket},
		{"# flake8: noqa", "", ValidBlanket},
		{"# flake8:  noqa", "", ValidBlanket},
		{"# flake8=noqa", "", ValidBlanket},
		{"# flake8= noqa", "", ValidBlanket},
		{"# flake8=  noqa", "", ValidBlanket},
		{"#flake8 noqa", FileBadHashSpace, Defect},
		{"#flake8:noqa", FileBadHashSpace, Defect},
		{"# FLAKE8 NOQA", FileMissingColon, Defect},
		{"# FLAKE8  NOQA", FileMissingColon, Defect},
		{"# FLAKE8 :NOQA", FileBadColonSpace, Defect},
		{"# FLAKE8 = NOQA", FileBadColonSpace, Defect},
	}
	for _, tc := range cases {
		f := MatchFile(tc.comment)
		if f == nil {
			t.Fatalf("MatchFile(%q) = nil", tc.comment)
		}
		p := ClassifyFile(f)
		if p == nil {
			t.Fatalf("ClassifyFile(%q) = nil", tc.comment)
		}
		if p.ID != tc.id || p.Kind != tc.kind {
			t.Fatalf("ClassifyFile(%q) = (%q, %v); want (%q, %v)", tc.comment, p.ID, p.Kind, tc.id, tc.kind)
		}
	}
}

func TestInventory_OrderAndIdentity(t *testing.T) {
	inv := Inventory()
	if len(inv) != len(InlinePatterns)+len(FilePatterns) {
		t.Fatalf("inventory size = %d; want %d", len(inv), len(InlinePatterns)+len(FilePatterns))
	}
	wantIDs := []string{BadHashSpace, MissingColon, BadCodeSpace, BadColonSpace, "", ""}
	for i, id := range wantIDs {
		if inv[i].Family != "line" || inv[i].ID != id {
			t.Fatalf("inventory[%d] = %+v; want line family with id %q", i, inv[i], id)
		}
	}
	seen := map[string]bool{}
	for _, p := range inv {
		if p.ID == "" {
			continue
		}
		if seen[p.ID] {
			t.Fatalf("diagnostic id %s assigned to more than one pattern", p.ID)
		}
		seen[p.ID] = true
	}
}
