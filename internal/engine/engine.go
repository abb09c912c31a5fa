package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/codewithboateng/noqalint/internal/checks"
	"github.com/codewithboateng/noqalint/internal/ir"
	"github.com/codewithboateng/noqalint/internal/noqa"
	"github.com/codewithboateng/noqalint/internal/storage"
)

// Analyze runs the two-phase protocol over the scanned files and assembles
// the run. Phase 1 evaluates every enabled check over every line, completing
// the per-line and per-file violation sets. Phase 2 recognizes annotations,
// validates them against the completed sets, and applies suppression. The
// order is a contract: validating before the sets are complete silently
// degrades matching, so there is no entry point that does it.
func Analyze(src string, files []ir.SourceFile, ctx ir.Context, waivers []storage.Waiver) ir.Run {
	run := ir.Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Source:    src,
		IRVersion: ir.Version,
		Context:   ctx,
	}
	vcfg := noqa.Config{RequireCode: ctx.RequireCode, IncludeName: ctx.IncludeName}

	var all []ir.Diagnostic
	for i := range files {
		diags, anns, stat := analyzeFile(&files[i], vcfg)
		all = append(all, diags...)
		run.Annotations = append(run.Annotations, anns...)
		run.Files = append(run.Files, stat)
	}

	all, waived := checks.ApplyWaivers(all, waivers)
	run.Waived = waived

	// Guarantee unique IDs within the run
	seen := make(map[string]struct{})
	seq := 0
	put := func(id string) bool {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
		return true
	}
	for k := range all {
		id := all[k].ID
		if id == "" || !put(id) {
			for {
				seq++
				candidate := fmt.Sprintf("%s-%06d", all[k].Code, seq)
				if put(candidate) {
					id = candidate
					break
				}
			}
			all[k].ID = id
		}
	}

	// Stable order for reproducible outputs
	sort.Slice(all, func(i, j int) bool {
		if ri, rj := checks.SeverityRank(all[i].Severity), checks.SeverityRank(all[j].Severity); ri != rj {
			return ri > rj
		}
		if all[i].File != all[j].File {
			return all[i].File < all[j].File
		}
		if all[i].Line != all[j].Line {
			return all[i].Line < all[j].Line
		}
		if all[i].Col != all[j].Col {
			return all[i].Col < all[j].Col
		}
		return all[i].ID < all[j].ID
	})
	run.Diagnostics = all
	return run
}

func analyzeFile(file *ir.SourceFile, vcfg noqa.Config) ([]ir.Diagnostic, []ir.Annotation, ir.FileStat) {
	// Phase 1: complete the violation sets before any annotation is judged.
	checkDiags := checks.Evaluate(file)
	perLine := map[int]noqa.CodeSet{}
	aggregate := noqa.NewCodeSet()
	for _, d := range checkDiags {
		s, ok := perLine[d.Line]
		if !ok {
			s = noqa.NewCodeSet()
			perLine[d.Line] = s
		}
		s.Add(d.Code)
		aggregate.Add(d.Code)
	}

	// Phase 2: recognize and validate annotations.
	var anns []ir.Annotation
	var vDiags []ir.Diagnostic
	blanketLines := map[int]bool{}
	codedLines := map[int]noqa.CodeSet{}
	fileBlanket := false
	haveDirective := false

	for _, line := range file.Lines {
		if line.CommentCol == 0 {
			continue
		}
		comment := noqa.CommentText(line)

		// the first file directive wins; later ones are not recognized
		if !haveDirective {
			if f := noqa.MatchFile(comment); f != nil {
				haveDirective = true
				valid := noqa.ClassifyFile(f).Kind != noqa.Defect
				anns = append(anns, ir.Annotation{
					File:  file.Path,
					Line:  line.Num,
					Col:   line.CommentCol,
					Text:  f.Text(),
					Scope: "file",
					Valid: valid,
				})
				vDiags = append(vDiags, noqa.ValidateFileDirective(line, aggregate, vcfg)...)
				if valid {
					fileBlanket = true
				}
				continue
			}
		}

		c := noqa.MatchInline(comment)
		if c == nil {
			continue
		}
		kind := noqa.ClassifyInline(c).Kind
		anns = append(anns, ir.Annotation{
			File:  file.Path,
			Line:  line.Num,
			Col:   line.CommentCol,
			Text:  c.Text(),
			Scope: "line",
			Codes: c.CodeList(),
			Valid: kind != noqa.Defect,
		})

		reported := perLine[line.Num]
		if reported == nil {
			reported = noqa.NewCodeSet()
		}
		vDiags = append(vDiags, noqa.ValidateLine(line, reported, vcfg)...)

		switch kind {
		case noqa.ValidBlanket:
			blanketLines[line.Num] = true
		case noqa.ValidCodes:
			// NQA-prefixed codes are dropped here, so an annotation can
			// never hide the diagnostics written about itself.
			codedLines[line.Num] = noqa.NewCodeSet(c.CodeList()...)
		}
	}

	// Suppression: valid annotations remove the check diagnostics they
	// cover; validator diagnostics are exempt.
	var kept []ir.Diagnostic
	suppressed := 0
	for _, d := range checkDiags {
		if !noqa.Owns(d.Code) {
			if fileBlanket || blanketLines[d.Line] {
				suppressed++
				continue
			}
			if s := codedLines[d.Line]; s != nil && s.Has(d.Code) {
				suppressed++
				continue
			}
		}
		kept = append(kept, d)
	}

	// newDiag cannot know the path, so it is stamped here.
	for i := range vDiags {
		vDiags[i].File = file.Path
	}

	stat := ir.FileStat{
		Path:       file.Path,
		LineCount:  len(file.Lines),
		Violations: len(checkDiags),
		Suppressed: suppressed,
	}
	return append(kept, vDiags...), anns, stat
}
