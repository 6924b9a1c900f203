package insight

import (
	"fmt"
	"strings"
)

// #region format

// FormatSources renders up to max grounding sources as a citation block for
// a follow-up prompt. Sources without a title fall back to their URI.
// max <= 0 means no limit.
func FormatSources(sources []Source, max int) string {
	if len(sources) == 0 {
		return ""
	}
	if max > 0 && len(sources) > max {
		sources = sources[:max]
	}
	var b strings.Builder
	b.WriteString("[Grounding Sources]\n")
	for i, s := range sources {
		title := strings.TrimSpace(s.Title)
		if title == "" {
			title = s.URI
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, title)
		if s.URI != "" && s.URI != title {
			fmt.Fprintf(&b, "   Source: %s\n", s.URI)
		}
	}
	return b.String()
}

// #endregion format
