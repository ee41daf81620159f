package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/codeatlas/codeatlas/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	faint   = lipgloss.Color("#3F3F46")
	success = lipgloss.Color("#22C55E")
	lime    = lipgloss.Color("#A3E635")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
	orange  = lipgloss.Color("#FB923C")
	info    = lipgloss.Color("#8B949E")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	fileStyle     = lipgloss.NewStyle().Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))

	priorityColors = map[domain.Priority]lipgloss.Color{
		domain.PriorityCritical: danger,
		domain.PriorityHigh:     orange,
		domain.PriorityMedium:   warning,
		domain.PriorityLow:      info,
	}
	severityColors = map[domain.Severity]lipgloss.Color{
		domain.SeverityHigh:   danger,
		domain.SeverityMedium: warning,
		domain.SeverityLow:    info,
	}
)

// MaxListed caps how many hotspots and smells are printed per section.
const MaxListed = 10

// RenderReport formats an analysis result for the terminal.
func RenderReport(r *domain.AnalysisResult) string {
	var b strings.Builder

	color := healthColor(r.HealthIndex)
	title := headerStyle.Render("codeatlas")
	subtitle := dimStyle.Render(r.ProjectName)
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Render(fmt.Sprintf("%.1f / 100", r.HealthIndex))
	statusStyled := lipgloss.NewStyle().Foreground(color).Render(r.HealthStatus)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + statusStyled))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %s %s\n", padRight("Health", 14), coloredBar(r.HealthIndex, 30))
	fmt.Fprintf(&b, "  %s %s\n", padRight("Files", 14), dimStyle.Render(fmt.Sprintf("%d", r.TotalFiles)))
	fmt.Fprintf(&b, "  %s %s\n", padRight("Lines of code", 14), dimStyle.Render(fmt.Sprintf("%d", r.TotalLOC)))
	fmt.Fprintf(&b, "  %s %s\n", padRight("Complexity", 14), dimStyle.Render(fmt.Sprintf("%.2f avg", r.AvgComplexity)))
	if r.CommitHash != "" {
		fmt.Fprintf(&b, "  %s %s\n", padRight("Commit", 14), faintStyle.Render(shortHash(r.CommitHash)))
	}

	b.WriteString("\n  " + separatorLine + "\n\n")
	renderHotspots(&b, r.Hotspots)

	b.WriteString("\n  " + separatorLine + "\n\n")
	renderSmells(&b, r.Smells)

	b.WriteString("\n  " + separatorLine + "\n\n")
	renderPlan(&b, r.RefactorActions)

	b.WriteString("\n")
	return b.String()
}

func renderHotspots(b *strings.Builder, hotspots []domain.Hotspot) {
	b.WriteString("  " + titleStyle.Render("Hotspots") + "\n\n")
	if len(hotspots) == 0 {
		b.WriteString("    " + passStyle.Render("No files analyzed.") + "\n")
		return
	}
	for i, h := range hotspots {
		if i == MaxListed {
			fmt.Fprintf(b, "    %s\n", dimStyle.Render(fmt.Sprintf("… %d more", len(hotspots)-MaxListed)))
			break
		}
		fmt.Fprintf(b, "    %s %s %s  %s\n",
			priorityTag(h.Priority),
			padRight(fmt.Sprintf("%5.1f", h.RiskScore), 6),
			fileStyle.Render(shortenPath(h.File)),
			dimStyle.Render(fmt.Sprintf("complexity %.1f · %d smells", h.Complexity, h.SmellsCount)),
		)
	}
}

func renderSmells(b *strings.Builder, smells []domain.SmellRecord) {
	b.WriteString("  " + titleStyle.Render("Smells"))
	if len(smells) == 0 {
		b.WriteString("\n\n    " + passStyle.Render("No smells found.") + "\n")
		return
	}
	counts := map[domain.Severity]int{}
	for _, s := range smells {
		counts[s.Severity]++
	}
	for _, sev := range []domain.Severity{domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow} {
		if counts[sev] > 0 {
			b.WriteString("  " + severityTag(sev, fmt.Sprintf("%d %s", counts[sev], sev)))
		}
	}
	b.WriteString("\n\n")

	listed := 0
	for _, sev := range []domain.Severity{domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow} {
		for _, s := range smells {
			if s.Severity != sev {
				continue
			}
			if listed == MaxListed {
				fmt.Fprintf(b, "    %s\n", dimStyle.Render(fmt.Sprintf("… %d more", len(smells)-MaxListed)))
				return
			}
			listed++
			fmt.Fprintf(b, "    %s %s\n", severityTag(s.Severity, padRight(string(s.Severity), 6)), fileStyle.Render(fmt.Sprintf("%s:%d", shortenPath(s.File), s.Line)))
			fmt.Fprintf(b, "           %s\n", dimStyle.Render(string(s.Type)+": "+s.Message))
		}
	}
}

func renderPlan(b *strings.Builder, actions []domain.RefactorAction) {
	b.WriteString("  " + titleStyle.Render("Refactor plan") + "\n\n")
	if len(actions) == 0 {
		b.WriteString("    " + passStyle.Render("Nothing to do.") + "\n")
		return
	}
	for i, a := range actions {
		target := ""
		if a.File != "" {
			target = " " + fileStyle.Render(shortenPath(a.File))
		}
		fmt.Fprintf(b, "    %d. %s %s%s\n", i+1, priorityTag(a.Priority), a.Action, target)
		fmt.Fprintf(b, "       %s\n", dimStyle.Render(fmt.Sprintf("%s · impact %s · effort %s", a.Description, a.Impact, a.Effort)))
	}
}

// RenderLanguages lists supported languages with their file extensions.
func RenderLanguages(langs map[domain.Language][]string) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Supported languages") + "\n\n")
	for _, lang := range domain.SupportedLanguages {
		exts, ok := langs[lang]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %s %s\n", padRight(string(lang), 12), dimStyle.Render(strings.Join(exts, " ")))
	}
	return b.String()
}

func priorityTag(p domain.Priority) string {
	c, ok := priorityColors[p]
	if !ok {
		c = fg
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(padRight(string(p), 8))
}

func severityTag(sev domain.Severity, text string) string {
	c, ok := severityColors[sev]
	if !ok {
		c = fg
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(text)
}

func coloredBar(score float64, width int) string {
	filled := max(0, min(int(score)*width/100, width))
	empty := width - filled

	filledStr := lipgloss.NewStyle().Foreground(healthColor(score)).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func healthColor(index float64) lipgloss.Color {
	switch domain.BadgeColor(index) {
	case "brightgreen":
		return success
	case "yellow":
		return lime
	case "orange":
		return warning
	default:
		return danger
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
