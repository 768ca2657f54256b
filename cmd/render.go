package cmd

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/naka-gawa/gsoc-explorer/internal/domain"
	"github.com/naka-gawa/gsoc-explorer/internal/explorer"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	gsocStyle   = cellStyle.Foreground(lipgloss.Color("#00f0ff"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// renderTable lays repos out as a terminal table. PR and commit columns appear only
// when key requested them.
func renderTable(repos []domain.Repository, key domain.SortKey) string {
	headers := []string{"#", "Repository", "Lang", "Stars", "Forks", "Issues", "Updated"}
	if key.NeedsPullRequests() {
		headers = append(headers, "PRs")
	}
	if key.NeedsCommits() {
		headers = append(headers, "Commits")
	}
	headers = append(headers, "GSOC")

	rows := make([][]string, 0, len(repos))
	for i, r := range repos {
		lang := r.Language
		if lang == "" {
			lang = "-"
		}
		row := []string{
			strconv.Itoa(i + 1),
			r.FullName,
			lang,
			strconv.Itoa(r.StargazersCount),
			strconv.Itoa(r.ForksCount),
			strconv.Itoa(r.OpenIssuesCount),
			r.UpdatedAt.Format("2006-01-02"),
		}
		if key.NeedsPullRequests() {
			row = append(row, countCell(r.PullRequestCount))
		}
		if key.NeedsCommits() {
			row = append(row, countCell(r.CommitCount))
		}
		gsoc := ""
		if r.IsGSOCOrg {
			gsoc = "★"
		}
		rows = append(rows, append(row, gsoc))
	}

	gsocCol := len(headers) - 1
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == gsocCol {
				return gsocStyle
			}
			return cellStyle
		})
	return t.Render()
}

func countCell(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// renderState renders a full explore view: the active filter, a status line and the table.
func renderState(s explorer.State) string {
	var b strings.Builder
	b.WriteString(describeFilter(s.Filter))
	b.WriteString("\n")
	switch {
	case s.IsLoading:
		b.WriteString("Loading...\n")
	case s.Error != "":
		b.WriteString("Error: " + s.Error + "\n")
	case len(s.Repositories) == 0:
		b.WriteString("No repositories.\n")
	default:
		b.WriteString(renderTable(s.Repositories, s.Filter.Sort))
		b.WriteString("\n")
	}
	return b.String()
}

func describeFilter(f domain.Filter) string {
	parts := []string{
		"language=" + f.Language,
		"topic=" + f.Topic,
		"sort=" + string(f.Sort),
		"gsoc=" + strconv.FormatBool(f.GSOCOnly),
	}
	if f.Query != "" {
		parts = append([]string{"q=" + strconv.Quote(f.Query)}, parts...)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
