package main

import (
	"fmt"
	"strings"

	"moonalyzer/internal/astro"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C4B5FD"))

	bodyStyle = lipgloss.NewStyle().
			Width(9).
			Foreground(lipgloss.Color("#FDE68A"))

	retroStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Italic(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)
)

func renderChart(chart *astro.Chart, digest string) string {
	var rows []string
	rows = append(rows, titleStyle.Render("🌙 Chart for "+chart.At.Format("2006-01-02 15:04 MST")))

	for _, o := range chart.Observations {
		line := fmt.Sprintf("%s %7.2f°  %s", bodyStyle.Render(o.Body.String()), o.Longitude, o.Sign)
		if o.Retrograde {
			line += " " + retroStyle.Render("℞ retrograde")
		}
		rows = append(rows, line)
	}

	rows = append(rows, "", titleStyle.Render("Aspects"))
	if len(chart.Aspects) == 0 {
		rows = append(rows, dimStyle.Render("none within orb"))
	}
	for _, hit := range chart.Aspects {
		rows = append(rows, fmt.Sprintf("%-32s %s", hit.String(), dimStyle.Render(fmt.Sprintf("orb %.2f°", hit.Orb))))
	}

	rows = append(rows, "", titleStyle.Render("Digest"), digest)

	return boxStyle.Render(strings.Join(rows, "\n"))
}

// cronLogger routes robfig/cron's internal logging through zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
