package checksdsl

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/noqalint/internal/checks"
	"github.com/codewithboateng/noqalint/internal/ir"
	"github.com/codewithboateng/noqalint/internal/noqa"
	"github.com/codewithboateng/noqalint/internal/scanner"
)

type dslPack struct {
	Checks []dslCheck `yaml:"checks"`
}

type dslCheck struct {
	Code     string `yaml:"code"`
	Summary  string `yaml:"summary"`
	Severity string `yaml:"severity"` // ERROR|WARNING|INFO
	Pattern  string `yaml:"pattern"`  // regex (case-insensitive)

	// MaskStrings matches against the line with string literals blanked,
	// so patterns aimed at code do not fire inside quoted text.
	MaskStrings bool `yaml:"mask_strings"`
}

type compiled struct {
	check dslCheck
	re    *regexp.Regexp
}

var codeRe = regexp.MustCompile(`^[A-Za-z]+[0-9]+$`)

func LoadAndRegister(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read check pack: %w", err)
	}
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}
	var n int
	for _, c := range pack.Checks {
		cc, err := compile(c)
		if err != nil {
			return n, fmt.Errorf("compile check %q: %w", c.Code, err)
		}
		registerCompiled(*cc)
		n++
	}
	return n, nil
}

func compile(c dslCheck) (*compiled, error) {
	if c.Code == "" || c.Summary == "" || c.Severity == "" || c.Pattern == "" {
		return nil, fmt.Errorf("missing required fields (code/summary/severity/pattern)")
	}
	if !codeRe.MatchString(c.Code) {
		return nil, fmt.Errorf("code %q must match letters-then-digits", c.Code)
	}
	if noqa.Owns(c.Code) {
		return nil, fmt.Errorf("code band %s* is reserved", noqa.Prefix)
	}
	re, err := regexp.Compile("(?i)" + c.Pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}
	return &compiled{check: c, re: re}, nil
}

func registerCompiled(c compiled) {
	checks.Register(checks.Check{
		ID:       c.check.Code,
		Summary:  c.check.Summary,
		Severity: strings.ToUpper(c.check.Severity),
		Eval: func(line ir.SourceLine) (int, bool) {
			text := line.Text
			if c.check.MaskStrings {
				text = scanner.MaskStrings(text)
			}
			if loc := c.re.FindStringIndex(text); loc != nil {
				return loc[0] + 1, true
			}
			return 0, false
		},
	})
}
