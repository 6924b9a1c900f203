package cli

// #region imports
import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adacomputing/ada-engine/internal/classifier"
	"github.com/adacomputing/ada-engine/internal/glyph"
	"github.com/adacomputing/ada-engine/internal/governance"
	"github.com/adacomputing/ada-engine/internal/ledger"
	"github.com/adacomputing/ada-engine/internal/mechanics"
	"github.com/adacomputing/ada-engine/internal/orchestrator"
	"github.com/adacomputing/ada-engine/internal/replay"
)

// #endregion

// #region styles

var (
	colorGreen  = lipgloss.Color("#8BC34A")
	colorYellow = lipgloss.Color("#FFC107")
	colorRed    = lipgloss.Color("#e53935")
	colorBlue   = lipgloss.Color("#2196F3")
	colorMuted  = lipgloss.Color("#7a869a")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	labelStyle = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
)

func statusStyle(s governance.ConstraintStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch s {
	case governance.StatusGreen:
		return base.Foreground(colorGreen)
	case governance.StatusYellow:
		return base.Foreground(colorYellow)
	default:
		return base.Foreground(colorRed)
	}
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

// #endregion

// #region report

func renderReport(rep orchestrator.Report) string {
	r := rep.Result
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Tier %d · %s", r.Tier, r.Method)),
		row("entity", r.Entity),
		row("shape", string(r.Shape)),
		row("confidence", fmt.Sprintf("%.2f", r.Confidence)),
		row("state", string(r.ScoreVector.State)),
		row("constraint", statusStyle(r.Constraint.Status).Render(string(r.Constraint.Status))+
			mutedStyle.Render(fmt.Sprintf(" ratio %.2f", r.Constraint.Ratio))),
		row("action", string(r.Action)),
		row("details", r.Details),
	}
	if r.LexicalInfo != nil {
		lines = append(lines, row("equation", r.LexicalInfo.Equation))
		if len(r.LexicalInfo.Synonyms) > 0 {
			lines = append(lines, row("synonyms", strings.Join(r.LexicalInfo.Synonyms, ", ")))
		}
		if len(r.LexicalInfo.Antonyms) > 0 {
			lines = append(lines, row("antonyms", strings.Join(r.LexicalInfo.Antonyms, ", ")))
		}
	}
	lines = append(lines,
		row("profile", rep.Mechanics.Profile),
		row("load path", rep.Mechanics.LoadPath),
	)

	out := boxStyle.Render(strings.Join(lines, "\n")) + "\n" + r.InsightText + "\n"
	for _, s := range r.GroundingSources {
		out += mutedStyle.Render(fmt.Sprintf("  source: %s %s", s.Title, s.URI)) + "\n"
	}
	return out
}

// #endregion

// #region analysis

func renderAnalysis(a mechanics.AnalysisResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(a.Word) + "  " + mutedStyle.Render(a.Profile) + "\n")
	for _, g := range a.Glyphs {
		fmt.Fprintf(&b, "  %s  %-12s %-20s %s\n", g.Char, g.Property, g.Role, g.Vector)
	}
	s := a.Stats
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"stability %d  containment %d  energy %d  flow %d  stop %d  alignment %d",
		s.Stability, s.Containment, s.Energy, s.Flow, s.Stop, s.Alignment)) + "\n")
	b.WriteString(row("load path", a.LoadPath) + "\n")
	return b.String()
}

func renderGlyphs(gs []glyph.Glyph) string {
	var b strings.Builder
	for _, g := range gs {
		fmt.Fprintf(&b, "%s  %-12s %-20s %s\n", g.Char, g.Property, g.Role, g.Vector)
	}
	return b.String()
}

func renderTrajectory(m float64, points []classifier.Point, closed bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("trajectory m=%.2f", m)) + "\n")
	for i, p := range points {
		fmt.Fprintf(&b, "  %2d  (%.3f, %.3f)\n", i, p[0], p[1])
	}
	if closed {
		b.WriteString(statusStyle(governance.StatusGreen).Render("closed") + "\n")
	} else {
		b.WriteString(statusStyle(governance.StatusRed).Render("open") + "\n")
	}
	return b.String()
}

// #endregion

// #region ledger

func renderEntries(entries []ledger.Entry) string {
	if len(entries) == 0 {
		return mutedStyle.Render("no entries") + "\n"
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %-5s T%d  %-40q %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Kind, e.Result.Tier, e.Query, e.Result.Entity)
		b.WriteString(mutedStyle.Render("  "+e.ID) + "\n")
	}
	return b.String()
}

func renderLexicon(entries []ledger.LexiconEntry) string {
	if len(entries) == 0 {
		return mutedStyle.Render("lexicon is empty") + "\n"
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(titleStyle.Render(e.Entity) + "  " + e.Info.Equation + "\n")
		if len(e.Info.Synonyms) > 0 {
			b.WriteString(row("  synonyms", strings.Join(e.Info.Synonyms, ", ")) + "\n")
		}
		if len(e.Info.Antonyms) > 0 {
			b.WriteString(row("  antonyms", strings.Join(e.Info.Antonyms, ", ")) + "\n")
		}
	}
	return b.String()
}

func renderReplay(results []replay.CaseResult, s replay.Summary) string {
	var b strings.Builder
	for _, r := range results {
		mark := statusStyle(governance.StatusGreen).Render("PASS")
		if !r.Passed {
			mark = statusStyle(governance.StatusRed).Render("FAIL")
		}
		fmt.Fprintf(&b, "%s  %-16s %q\n", mark, r.ID, r.Query)
		for _, m := range r.Mismatches {
			b.WriteString(errorStyle.Render("      "+m) + "\n")
		}
	}
	fmt.Fprintf(&b, "%d cases: %d passed, %d failed, %d degraded\n", s.Total, s.Passed, s.Failed, s.Degraded)
	return b.String()
}

// #endregion
