package main

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ignite/agent-tracker/internal/report"
	"github.com/ignite/agent-tracker/internal/tracker"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	missedStyle = cellStyle.Foreground(lipgloss.Color("#FF6B6B"))
	mutedStyle  = cellStyle.Foreground(lipgloss.Color("#888888"))

	bannerStyles = map[report.BannerLevel]lipgloss.Style{
		report.BannerInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5DADE2")),
		report.BannerSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71")).Bold(true),
		report.BannerWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F5B041")).Bold(true),
		report.BannerError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

func renderBanner(b report.Banner) string {
	return bannerStyles[b.Level].Render(b.Message)
}

// renderError shows tracker errors with their user-facing wording and
// anything else as is.
func renderError(err error) string {
	msg := err.Error()
	for _, target := range []error{
		tracker.ErrUnreadable, tracker.ErrMissingColumn, tracker.ErrEmpty,
		tracker.ErrInvalidRange, tracker.ErrUnknownAgent,
	} {
		if errors.Is(err, target) {
			msg = report.ErrorMessage(err)
			break
		}
	}
	return renderBanner(report.Banner{Level: report.BannerError, Message: msg})
}

func renderTable(rows []report.DisplayRow) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		achieved := "No"
		if r.TargetAchieved {
			achieved = "Yes"
		}
		cells = append(cells, []string{r.Date, r.Queue, r.ProcessedLots, r.TargetLots, r.Reasons, achieved})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(report.Columns...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row < 0 || row >= len(rows):
				return cellStyle
			case rows[row].Invalid:
				return mutedStyle
			case !rows[row].TargetAchieved && col == len(report.Columns)-1:
				return missedStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}
