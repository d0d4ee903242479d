package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sawaday/gh-log/internal/domain"
	"github.com/sawaday/gh-log/internal/render"
)

const topReviewers = 10

var (
	keyStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	leadStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	repoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	sizeStyles = map[domain.Size]lipgloss.Style{
		domain.SizeS:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		domain.SizeM:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		domain.SizeL:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		domain.SizeXL: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

func (m Model) headerView() string {
	detailLabel := "Details"
	switch {
	case m.view == viewDetail && m.mode == detailByWeek:
		detailLabel = "By Repo"
	case m.view == viewDetail && m.mode == detailByRepo:
		detailLabel = "By Week"
	}

	controls := fmt.Sprintf("%s: Summary | %s: %s | %s: Tail | %s: Scroll | %s: Quit",
		keyStyle.Render("s"),
		keyStyle.Render("d"), detailLabel,
		keyStyle.Render("t"),
		keyStyle.Render("jk"),
		keyStyle.Render("q"))

	stats := m.stats
	reviewRatio := 0.0
	if stats.TotalPRs > 0 {
		reviewRatio = float64(stats.ReviewedCount) / float64(stats.TotalPRs)
	}

	title := fmt.Sprintf("GitHub PRs for %s", boldStyle.Render(render.FormatMonth(stats.MonthStart)))
	if m.view == viewDetail {
		mode := "by Week"
		if m.mode == detailByRepo {
			mode = "by Repository"
		}
		title += " — " + accentStyle.Render(mode)
	}

	totals := fmt.Sprintf("Total PRs: %s | Avg Lead Time: %s | Frequency: %s",
		repoStyle.Render(fmt.Sprintf("%d", stats.TotalPRs)),
		leadStyle.Render(render.FormatDuration(stats.AvgLeadTime)),
		countStyle.Render(render.FormatFrequency(stats.Frequency)))

	balance := fmt.Sprintf("Sizes: %s | Review Balance: %s%s",
		stats.Sizes,
		accentStyle.Render(fmt.Sprintf("%.1f:1", reviewRatio)),
		dimStyle.Render(fmt.Sprintf(" (%d reviewed)", stats.ReviewedCount)))

	rule := dimStyle.Render(strings.Repeat("─", max(m.width, 1)))
	return strings.Join([]string{controls, title, totals, balance, rule}, "\n")
}

func (m Model) summaryContent() string {
	var b strings.Builder
	stats := m.stats

	b.WriteString(m.sectionLine("Weeks") + "\n")
	for _, week := range stats.Weeks {
		fmt.Fprintf(&b, "Week %s (%s) | %s PRs | Avg: %s\n",
			boldStyle.Render(fmt.Sprintf("%d", week.WeekNum)),
			render.FormatDateRangeShort(week.Start, week.End),
			countStyle.Render(fmt.Sprintf("%2d", week.PRCount)),
			leadStyle.Render(render.FormatDuration(week.AvgLeadTime)))
	}
	b.WriteString("\n")

	b.WriteString(m.sectionLine("Repositories") + "\n")
	for _, repo := range stats.Repos {
		fmt.Fprintf(&b, "%s | %s PRs | Avg: %s | %s\n",
			repoStyle.Render(repo.Name),
			countStyle.Render(fmt.Sprintf("%2d", repo.PRCount)),
			leadStyle.Render(render.FormatDuration(repo.AvgLeadTime)),
			repo.Sizes)
	}
	b.WriteString("\n")

	b.WriteString(m.sectionLine("Top Reviewers") + "\n")
	for i, reviewer := range stats.Reviewers {
		if i >= topReviewers {
			break
		}
		fmt.Fprintf(&b, "%s | %s PRs\n",
			reviewer.Login,
			countStyle.Render(fmt.Sprintf("%d", reviewer.PRCount)))
	}

	return b.String()
}

func (m Model) detailByWeekContent() string {
	var b strings.Builder
	for _, week := range m.stats.Weeks {
		header := fmt.Sprintf("━━━ Week %d (%s) | %d PRs | Avg: %s ",
			week.WeekNum,
			render.FormatDateRangeShort(week.Start, week.End),
			week.PRCount,
			render.FormatDuration(week.AvgLeadTime))
		b.WriteString(sectionStyle.Render(header) + "\n")
		writePRLines(&b, week.PRs)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) detailByRepoContent() string {
	var b strings.Builder
	for _, repo := range m.stats.Repos {
		header := fmt.Sprintf("━━━ %s | %d PRs | Avg: %s | [%s] ",
			repo.Name,
			repo.PRCount,
			render.FormatDuration(repo.AvgLeadTime),
			repo.Sizes)
		b.WriteString(sectionStyle.Render(header) + "\n")
		writePRLines(&b, repo.PRs)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) tailContent() string {
	var all []domain.PRDetail
	for _, week := range m.stats.Weeks {
		all = append(all, week.PRs...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].LeadTime > all[j].LeadTime
	})

	var b strings.Builder
	b.WriteString(m.sectionLine("All PRs sorted by Lead Time (longest first)") + "\n")
	writePRLines(&b, all)
	return b.String()
}

func (m Model) sectionLine(title string) string {
	line := fmt.Sprintf("━━━ %s ", title)
	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat("━", pad)
	}
	return sectionStyle.Render(line)
}

func writePRLines(b *strings.Builder, prs []domain.PRDetail) {
	for _, pr := range prs {
		fmt.Fprintf(b, "%s | %s | %s %s | %s | %s\n",
			dimStyle.Render(render.FormatDateShort(pr.CreatedAt)),
			repoStyle.Render(pr.Repo),
			dimStyle.Render(fmt.Sprintf("#%d", pr.Number)),
			pr.Title,
			leadStyle.Render(render.FormatDuration(pr.LeadTime)),
			sizeStyles[pr.Size].Render(string(pr.Size)))
	}
}
