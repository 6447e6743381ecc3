package present

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/preston-bernstein/market-data-watch/internal/domain/market"
	"github.com/preston-bernstein/market-data-watch/internal/state"
)

const cellWidth = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 1)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cellStyle    = lipgloss.NewStyle().Width(cellWidth)

	categoryStyles = map[market.Category]lipgloss.Style{
		market.StrongPositive:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")),
		market.ModeratePositive: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
		market.ModerateNegative: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("217")),
		market.StrongNegative:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
	}
)

// CategoryStyle returns the row style for c; neutral rows are unstyled.
func CategoryStyle(c market.Category) lipgloss.Style {
	if s, ok := categoryStyles[c]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Render draws st as a terminal table: title, held rows colored by category, then the banner for
// the selected view.
func Render(st state.PollState) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(Title))
	b.WriteString("\n")

	rows := Rows(st)
	if len(rows) > 0 {
		b.WriteString(headerStyle.Render(joinCells(Columns)))
		b.WriteString("\n")
		for _, row := range rows {
			b.WriteString(CategoryStyle(row.Category).Render(joinCells(row.Cells())))
			b.WriteString("\n")
		}
	}

	view := SelectView(st)
	switch view {
	case ViewError:
		b.WriteString(errorStyle.Render(view.Message()))
		b.WriteString("\n")
	case ViewLoading:
		b.WriteString(loadingStyle.Render(view.Message()))
		b.WriteString("\n")
	case ViewEmpty:
		b.WriteString(emptyStyle.Render(view.Message()))
		b.WriteString("\n")
	}
	if !st.UpdatedAt.IsZero() {
		b.WriteString(emptyStyle.Render(fmt.Sprintf("updated %s", st.UpdatedAt.Format("15:04:05"))))
		b.WriteString("\n")
	}
	return b.String()
}

func joinCells(cells []string) string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, cellStyle.Render(c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}
