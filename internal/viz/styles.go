package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/storage"
)

type Styles struct {
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Muted  lipgloss.Style
	Good   lipgloss.Style
	Warn   lipgloss.Style
	Bad    lipgloss.Style
	Panel  lipgloss.Style
	Graph  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Label: lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		Value: lipgloss.NewStyle().Foreground(t.Text),
		Muted: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Good:  lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Warn:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Bad:   lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Graph: lipgloss.NewStyle().Foreground(t.Accent),
	}
}

var DefaultStyles = NewStyles(ThemeCyberpunk)

func (s Styles) row(label, value string) string {
	return s.Label.Render(label) + s.Value.Render(value) + "\n"
}

// RenderSummary formats a finished run for the terminal.
func RenderSummary(meta storage.RunMetadata, errs []error) string {
	s := DefaultStyles
	var b strings.Builder

	b.WriteString(s.Header.Render(strings.ToUpper(meta.Scene)) + "\n")
	if meta.ID != "" {
		b.WriteString(s.row("run", meta.ID))
	}
	b.WriteString(s.row("scalar", meta.Scalar))
	b.WriteString(s.row("integrator", meta.Integrator))
	b.WriteString(s.row("dt", fmt.Sprintf("%g", meta.Dt)))
	b.WriteString(s.row("ticks", fmt.Sprintf("%d/%d", meta.TicksTaken, meta.Ticks)))
	b.WriteString(s.row("bodies", strings.Join(meta.Bodies, ", ")))

	keys := make([]string, 0, len(meta.Metrics))
	for k := range meta.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(s.row(k, fmt.Sprintf("%.4f", meta.Metrics[k])))
	}

	status := s.Good.Render("ok")
	if meta.TicksTaken < meta.Ticks {
		status = s.Warn.Render("stopped early")
	}
	if len(errs) > 0 {
		status = s.Bad.Render(fmt.Sprintf("%d tick(s) with errors", len(errs)))
	}
	b.WriteString(s.row("status", status))

	const maxShown = 3
	for i, err := range errs {
		if i == maxShown {
			b.WriteString(s.Muted.Render(fmt.Sprintf("  ... %d more", len(errs)-maxShown)) + "\n")
			break
		}
		b.WriteString(s.Muted.Render("  "+err.Error()) + "\n")
	}

	return s.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func RenderRuns(runs []storage.RunMetadata) string {
	s := DefaultStyles
	if len(runs) == 0 {
		return s.Muted.Render("no runs")
	}

	var b strings.Builder
	b.WriteString(s.Header.Render(fmt.Sprintf("%-24s %-10s %-11s %8s %s", "ID", "SCENE", "INTEGRATOR", "TICKS", "WHEN")) + "\n")
	for _, r := range runs {
		line := fmt.Sprintf("%-24s %-10s %-11s %8d %s",
			r.ID, r.Scene, r.Integrator, r.TicksTaken, r.Timestamp.Format("2006-01-02 15:04:05"))
		if r.Errors > 0 {
			b.WriteString(s.Warn.Render(line) + "\n")
		} else {
			b.WriteString(s.Value.Render(line) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderPresets(names []string, presets map[string]*config.Scene) string {
	s := DefaultStyles
	var b strings.Builder
	b.WriteString(s.Header.Render("PRESETS") + "\n")
	for _, name := range names {
		scene := presets[name]
		desc := fmt.Sprintf("%s, %dD, %d bodies, %s", scene.Scalar, len(scene.Gravity), len(scene.Bodies), scene.Integrator)
		b.WriteString(s.row(name, desc))
	}
	return strings.TrimRight(b.String(), "\n")
}
