package tui

import (
	"fmt"
	"strings"

	"github.com/colegioapp/colegio/internal/api"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Parent Dashboard"))
	b.WriteString("\n")
	header := "Academic progress"
	if m.parentName != "" {
		header += " • " + m.parentName
	}
	if m.dashboard != nil && m.dashboard.CurrentPeriod != "" {
		header += " • Period: " + m.dashboard.CurrentPeriod
	}
	b.WriteString(m.styles.Subtitle.Render(header))
	b.WriteString("\n")

	if m.offline {
		stale := m.styles.Warning.Render(
			fmt.Sprintf("Cached snapshot from %s; data may be out of date", m.fetchedAt.Format("2006-01-02 15:04")))
		b.WriteString(stale)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(m.styles.Error.Render("Error: ") + m.errMsg)
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading dashboard...\n")
	case m.detailLoading:
		b.WriteString(m.spinner.View() + " Loading details...\n")
	case m.currentView == viewDetail && m.detail != nil:
		b.WriteString(m.renderDetail())
	default:
		b.WriteString(m.renderChildren())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())
	return b.String()
}

// renderChildren renders the filtered child cards.
func (m Model) renderChildren() string {
	var b strings.Builder

	if m.dashboard == nil {
		return m.styles.Muted.Render("No dashboard data.") + "\n"
	}

	if len(m.dashboard.ImportantAlerts) > 0 {
		for _, alert := range m.dashboard.ImportantAlerts {
			b.WriteString(m.styles.Warning.Render("! " + alert.Message))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if summary := m.dashboard.GeneralSummary; summary != nil {
		line := fmt.Sprintf("Children: %d  •  Average: %s  •  Attendance: %s",
			summary.TotalChildren,
			fmtFloat(summary.AverageGrade),
			fmtPct(summary.AttendancePct))
		b.WriteString(m.styles.Subtitle.Render(line))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Muted.Render("Filter: " + m.filter.label()))
	b.WriteString("\n\n")

	children := m.filteredChildren()
	if len(children) == 0 {
		if m.filter == filterAll {
			b.WriteString(m.styles.Muted.Render("No children registered. Contact the school administration."))
		} else {
			b.WriteString(m.styles.Muted.Render("No children match this filter."))
		}
		b.WriteString("\n")
		return b.String()
	}

	for i, child := range children {
		b.WriteString(m.renderChildCard(child, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderChildCard(child api.ChildOverview, selected bool) string {
	var lines []string

	name := child.FullName
	if name == "" {
		name = "N/A"
	}
	lines = append(lines, m.styles.Title.Render(name)+"  "+m.styles.Muted.Render(orNA(child.CourseName)))

	lines = append(lines, fmt.Sprintf("Average: %s   Attendance: %s   Status: %s",
		m.gradeStyle(child.AverageGrade).Render(fmtFloat(child.AverageGrade)),
		m.attendanceStyle(child.AttendancePct).Render(fmtPct(child.AttendancePct)),
		statusLabel(child.AcademicStatus)))

	if n := len(child.Alerts); n > 0 {
		label := fmt.Sprintf("%d alert", n)
		if n > 1 {
			label += "s"
		}
		lines = append(lines, m.styles.Warning.Render(label))
	}
	if len(child.UpcomingEvents) > 0 {
		lines = append(lines, m.styles.Muted.Render("Next: "+child.UpcomingEvents[0].Title))
	}

	card := strings.Join(lines, "\n")
	if selected {
		return m.styles.Selected.Render(card)
	}
	return m.styles.Card.Render(card)
}

// renderDetail renders one child's per-period breakdown.
func (m Model) renderDetail() string {
	var b strings.Builder
	d := m.detail

	b.WriteString(m.styles.Title.Render(orNA(d.FullName)))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(orNA(d.CourseName) + " • " + orNA(d.Level)))
	if m.period != "" {
		b.WriteString(m.styles.Subtitle.Render(" • " + m.period))
	}
	b.WriteString("\n\n")

	if stats := d.Stats; stats != nil {
		b.WriteString(fmt.Sprintf("Average:        %s  (%d/%d subjects)\n",
			m.gradeStyle(stats.AverageGrade).Render(fmtFloat(stats.AverageGrade)),
			stats.SubjectsWithGrade, stats.TotalSubjects))
		b.WriteString(fmt.Sprintf("Attendance:     %s  (%d/%d days)\n",
			m.attendanceStyle(stats.AttendancePct).Render(fmtPct(stats.AttendancePct)),
			stats.DaysPresent, stats.TotalDays))
		b.WriteString(fmt.Sprintf("Participation:  %s\n", fmtFloat(stats.ParticipationAvg)))
		b.WriteString("\n")
	}

	if len(d.Subjects) > 0 {
		b.WriteString(m.styles.Title.Render("Subjects"))
		b.WriteString("\n")
		for _, subject := range d.Subjects {
			b.WriteString(fmt.Sprintf("  %-24s %s %s\n",
				orNA(subject.Name),
				fmtFloat(subject.Average),
				trendArrow(subject.Trend)))
		}
		b.WriteString("\n")
	}

	if p := d.Prediction; p != nil {
		b.WriteString(m.styles.Title.Render("Prediction"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  Expected grade: %s %s\n", fmtFloat(p.PredictedGrade), trendArrow(p.Trend)))
		for _, rec := range p.Recommendations {
			b.WriteString("  • " + rec + "\n")
		}
		b.WriteString("\n")
	}

	if nav := d.Navigation; nav != nil && !nav.OnlyChild && len(nav.Siblings) > 0 {
		names := make([]string, 0, len(nav.Siblings))
		for _, s := range nav.Siblings {
			names = append(names, strings.TrimSpace(s.FirstName+" "+s.LastName))
		}
		b.WriteString(m.styles.Muted.Render("Other children: " + strings.Join(names, ", ")))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderHelpLine() string {
	var parts []string
	if m.currentView == viewDetail {
		parts = append(parts, "esc back")
		if !m.offline {
			parts = append(parts, "p period")
		}
	} else {
		parts = append(parts, "↑/↓ move")
		if !m.offline {
			parts = append(parts, "enter details", "r refresh")
		}
		parts = append(parts, "f filter")
	}
	parts = append(parts, "q quit")
	return m.styles.Help.Render(strings.Join(parts, " • "))
}

func (m Model) gradeStyle(v *float64) interface{ Render(...string) string } {
	switch {
	case v == nil:
		return m.styles.Muted
	case *v >= 80:
		return m.styles.Good
	case *v >= 60:
		return m.styles.Warning
	default:
		return m.styles.Bad
	}
}

func (m Model) attendanceStyle(v *float64) interface{ Render(...string) string } {
	switch {
	case v == nil:
		return m.styles.Muted
	case *v >= lowAttendanceThreshold:
		return m.styles.Good
	default:
		return m.styles.Bad
	}
}

// fmtFloat formats an optional figure, defaulting to "N/A". Missing fields in
// an otherwise-successful payload are a display concern, not an error.
func fmtFloat(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *v)
}

func fmtPct(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// statusLabel maps backend status slugs to display text.
func statusLabel(status string) string {
	switch status {
	case "excelente":
		return "excellent"
	case "necesita_atencion":
		return "needs attention"
	case "":
		return "N/A"
	default:
		return status
	}
}

// trendArrow maps backend trend labels to arrows.
func trendArrow(trend string) string {
	switch trend {
	case "mejorando", "ascendente":
		return "↑"
	case "empeorando", "descendente":
		return "↓"
	case "":
		return ""
	default:
		return "→"
	}
}
