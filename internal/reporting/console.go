package reporting

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/codewithboateng/noqalint/internal/ir"
)

// Theme defines colors and icons for terminal report output.
type Theme struct {
	Name    string
	Header  lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Icons   ThemeIcons
}

// ThemeIcons defines the icon set for a theme.
type ThemeIcons struct {
	Err   string
	Warn  string
	Info  string
	Clean string
	Dot   string
}

// DefaultTheme returns the standard color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Header:  lipgloss.NewStyle().Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Icons: ThemeIcons{
			Err:   "✗",
			Warn:  "⚠",
			Info:  "●",
			Clean: "✓",
			Dot:   "·",
		},
	}
}

// MonoTheme returns a monochrome theme (no colors).
func MonoTheme() Theme {
	return Theme{
		Name:    "mono",
		Header:  lipgloss.NewStyle().Bold(true),
		Error:   lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Info:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Icons: ThemeIcons{
			Err:   "x",
			Warn:  "!",
			Info:  "*",
			Clean: "+",
			Dot:   "-",
		},
	}
}

// Console renders a run as styled terminal output via lipgloss.
type Console struct {
	theme Theme
	width int
}

// NewConsole creates a console renderer for w. Colors are dropped when w is
// not a terminal or NO_COLOR is set; width comes from the terminal when
// available, defaulting to 80.
func NewConsole(w io.Writer) *Console {
	theme := DefaultTheme()
	if !isTTYWriter(w) || os.Getenv("NO_COLOR") != "" {
		theme = MonoTheme()
	}
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}
	return &Console{theme: theme, width: width}
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Render formats the run for terminal display: a run header, diagnostics
// grouped per file in line order, and a summary block.
func (c *Console) Render(run *ir.Run) string {
	var sb strings.Builder

	var totalLines, suppressed int
	for _, fs := range run.Files {
		totalLines += fs.LineCount
		suppressed += fs.Suppressed
	}

	sb.WriteString(c.theme.Header.Render("noqalint " + run.ID))
	sb.WriteString("\n")
	sb.WriteString(c.theme.Muted.Render(fmt.Sprintf("  %d files, %d lines, threshold %s", len(run.Files), totalLines, run.Context.SeverityThreshold)))
	sb.WriteString("\n")

	byFile := map[string][]ir.Diagnostic{}
	for _, d := range run.Diagnostics {
		byFile[d.File] = append(byFile[d.File], d)
	}

	for _, fs := range run.Files {
		ds := byFile[fs.Path]
		if len(ds) == 0 {
			continue
		}
		sort.Slice(ds, func(i, j int) bool {
			if ds[i].Line != ds[j].Line {
				return ds[i].Line < ds[j].Line
			}
			if ds[i].Col != ds[j].Col {
				return ds[i].Col < ds[j].Col
			}
			return ds[i].ID < ds[j].ID
		})

		sb.WriteString("\n")
		sb.WriteString(c.theme.Header.Render(fs.Path))
		sb.WriteString("\n")

		maxPos, maxCode := 0, 0
		poss := make([]string, len(ds))
		for i, d := range ds {
			poss[i] = strconv.Itoa(d.Line) + ":" + strconv.Itoa(d.Col)
			if len(poss[i]) > maxPos {
				maxPos = len(poss[i])
			}
			if len(d.Code) > maxCode {
				maxCode = len(d.Code)
			}
		}

		for i, d := range ds {
			sb.WriteString("  ")
			sb.WriteString(c.theme.Muted.Render(padLeft(poss[i], maxPos)))
			sb.WriteString("  ")
			sb.WriteString(c.severityStyle(d.Severity).Render(padRight(d.Code, maxCode)))
			sb.WriteString("  ")
			sb.WriteString(c.clip(d.Message, 6+maxPos+maxCode))
			sb.WriteString("\n")
		}
	}

	errs, warns, infos := severityCounts(run.Diagnostics)

	sb.WriteString("\n")
	sb.WriteString(c.theme.Header.Render("Summary"))
	sb.WriteString("\n")
	if len(run.Diagnostics) == 0 {
		sb.WriteString("  ")
		sb.WriteString(c.theme.Info.Render(c.theme.Icons.Clean + " no diagnostics"))
		sb.WriteString("\n")
	} else {
		c.metric(&sb, c.theme.Icons.Err, c.theme.Error, "errors", errs)
		c.metric(&sb, c.theme.Icons.Warn, c.theme.Warning, "warnings", warns)
		c.metric(&sb, c.theme.Icons.Info, c.theme.Info, "info", infos)
	}
	c.metric(&sb, c.theme.Icons.Dot, c.theme.Muted, "suppressed by noqa", suppressed)
	if run.Waived > 0 {
		c.metric(&sb, c.theme.Icons.Dot, c.theme.Muted, "waived", run.Waived)
	}
	return sb.String()
}

func (c *Console) metric(sb *strings.Builder, icon string, style lipgloss.Style, label string, n int) {
	sb.WriteString("  ")
	sb.WriteString(style.Render(icon + " " + label + ": " + strconv.Itoa(n)))
	sb.WriteString("\n")
}

func (c *Console) severityStyle(severity string) lipgloss.Style {
	switch severity {
	case "ERROR":
		return c.theme.Error
	case "WARNING":
		return c.theme.Warning
	default:
		return c.theme.Info
	}
}

// clip truncates a message to the width left after the position and code
// columns, keeping at least a readable tail.
func (c *Console) clip(s string, used int) string {
	avail := c.width - used
	if avail < 16 {
		avail = 16
	}
	r := []rune(s)
	if len(r) <= avail {
		return s
	}
	return string(r[:avail-3]) + "..."
}

func severityCounts(diags []ir.Diagnostic) (errs, warns, infos int) {
	for _, d := range diags {
		switch d.Severity {
		case "ERROR":
			errs++
		case "WARNING":
			warns++
		default:
			infos++
		}
	}
	return
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
