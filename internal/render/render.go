// Package render formats box scores for the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/engine"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

var (
	title  = lipgloss.NewStyle().Bold(true)
	header = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell   = lipgloss.NewStyle().Padding(0, 1)
	border = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		BorderHeader(true).
		BorderRow(false).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

// FormatStat prints whole numbers without decimals and split sacks as halves
func FormatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BoxScore renders the final score, the half-by-half line and team totals
func BoxScore(box *models.BoxScore) string {
	g := box.Game
	var b strings.Builder

	b.WriteString(title.Render(fmt.Sprintf("%s %d - %d %s", g.HomeTeam, g.HomeScore, g.AwayScore, g.AwayTeam)))
	b.WriteString("\n")
	b.WriteString(dim.Render(fmt.Sprintf("seed %d · %d drives · opening kick to %s", g.Seed, g.Drives, g.OpeningKickTo)))
	b.WriteString("\n")

	if len(box.PeriodScores) > 0 {
		headers := []string{"Team"}
		home := []string{g.HomeTeam}
		away := []string{g.AwayTeam}
		for _, p := range box.PeriodScores {
			headers = append(headers, p.Label)
			home = append(home, strconv.Itoa(p.HomeScore))
			away = append(away, strconv.Itoa(p.AwayScore))
		}
		headers = append(headers, "Final")
		home = append(home, strconv.Itoa(g.HomeScore))
		away = append(away, strconv.Itoa(g.AwayScore))

		b.WriteString(newTable(headers...).Rows(home, away).Render())
		b.WriteString("\n")
	}

	totals := newTable("Stat", g.HomeTeam, g.AwayTeam)
	for _, label := range engine.SummaryLabels() {
		totals.Row(label, FormatStat(box.HomeStats[label]), FormatStat(box.AwayStats[label]))
	}
	b.WriteString(totals.Render())
	b.WriteString("\n")
	return b.String()
}

// PlayerLines lists each player's non-zero stats, one player per line
func PlayerLines(players []models.PlayerStat) string {
	var b strings.Builder
	for _, p := range players {
		if len(p.DisplayStats) == 0 {
			continue
		}
		parts := make([]string, len(p.DisplayStats))
		for i, s := range p.DisplayStats {
			parts[i] = fmt.Sprintf("%s %s", s.Label, s.Value)
		}
		fmt.Fprintf(&b, "%s (%s): %s\n", p.PlayerName, p.Position, strings.Join(parts, ", "))
	}
	return b.String()
}

// Batch renders a summary of many games between the same two teams
func Batch(sum engine.BatchSummary, home, away string) string {
	t := newTable("Team", "Wins", "Avg Points").
		Row(home, humanize.Comma(int64(sum.HomeWins)), fmt.Sprintf("%.1f", sum.AvgHome)).
		Row(away, humanize.Comma(int64(sum.AwayWins)), fmt.Sprintf("%.1f", sum.AvgAway))

	var b strings.Builder
	b.WriteString(title.Render(fmt.Sprintf("%s games simulated", humanize.Comma(int64(sum.Games)))))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	fmt.Fprintf(&b, "ties %s · avg drives %.1f\n", humanize.Comma(int64(sum.Ties)), sum.AvgDrives)
	return b.String()
}
