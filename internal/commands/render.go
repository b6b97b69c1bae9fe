package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/luminacoach/lumina/internal/apiclient"
	"github.com/luminacoach/lumina/internal/domain/note"
)

const (
	colorAccent = "#7C3AED"
	colorMuted  = "#6D7383"
	colorBorder = "#3A3F55"
	colorOK     = "#22C55E"
	colorWarn   = "#F59E0B"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorOK))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarn))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1)
)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(colorBorder))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "completed", "paid", "active":
		return okStyle
	case "cancelled", "overdue", "paused":
		return warnStyle
	}
	return lipgloss.NewStyle()
}

func renderNote(n apiclient.Note) string {
	var b strings.Builder

	header := mutedStyle.Render(n.Timestamp)
	if n.IsTemplate {
		header = titleStyle.Render(n.TemplateName) + "  " + header
	}
	fmt.Fprintf(&b, "%s  %s\n", header, mutedStyle.Render(n.ID))

	if !n.IsTemplate {
		b.WriteString(n.Content)
		return cardStyle.Render(b.String())
	}

	entries := n.Entries
	if len(entries) == 0 {
		entries, _ = note.Render(n.Fields, n.Content)
	}
	for i, e := range entries {
		value := e.Value
		if e.Empty {
			value = mutedStyle.Render(note.EmptyPlaceholder)
		}
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s", labelStyle.Render(e.Field+":"), value)
	}
	return cardStyle.Render(b.String())
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
