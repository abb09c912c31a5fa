package checks

import "strings"

type Settings struct {
	SeverityThreshold string
	Disabled          map[string]bool
	MaxLineLength     int
}

var csettings = Settings{
	SeverityThreshold: "INFO",
	Disabled:          map[string]bool{},
	MaxLineLength:     79,
}

func SetSettings(s Settings) {
	// fill defaults
	if s.SeverityThreshold == "" {
		s.SeverityThreshold = csettings.SeverityThreshold
	}
	if s.Disabled == nil {
		s.Disabled = map[string]bool{}
	}
	if s.MaxLineLength == 0 {
		s.MaxLineLength = csettings.MaxLineLength
	}
	csettings = s
}

func severityRank(sev string) int {
	switch strings.ToUpper(strings.TrimSpace(sev)) {
	case "ERROR":
		return 3
	case "WARNING":
		return 2
	default:
		return 1 // INFO or unknown → INFO
	}
}

func severityOK(sev string) bool {
	return severityRank(sev) >= severityRank(csettings.SeverityThreshold)
}

// SeverityRank is the shared ordering used for report sorting and API
// filtering.
func SeverityRank(sev string) int { return severityRank(sev) }
