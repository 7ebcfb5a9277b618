package render

import (
	"fmt"

	"f1acleaderboard/pkg/helper"
	"f1acleaderboard/pkg/model"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	headerPosition = "POS"
	headerDriver   = "PIL"
	headerName     = "Nombre"
	headerSurname  = "Apellido"
	headerBest     = "Mejor (s)"
	headerAvg      = "Media (s)"
	headerCircuit  = "Circuito"
	headerF1       = "F1"
	headerAC       = "AC"
	headerDiff     = "Dif"
)

// LeaderboardTable renders the leaderboard: position, driver code, full name
// and best and average lap in seconds.
func LeaderboardTable(rows []model.LeaderboardRow) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{headerPosition, headerDriver, headerName, headerSurname, headerBest, headerAvg})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.Position,
			helper.GetDriverCodeName(r.Forename, r.Surname),
			r.Forename,
			r.Surname,
			fmt.Sprintf("%.3f", r.BestLapS),
			fmt.Sprintf("%.3f", r.AvgLapS),
		})
	}
	return t.Render()
}

// ComparisonTable renders average lap times per circuit and the simulator gap.
func ComparisonTable(rows []model.ComparisonRow) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{headerCircuit, headerF1, headerAC, headerDiff})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.CircuitName,
			helper.MillisToMinutes(r.F1AvgLapMS),
			helper.MillisToMinutes(r.ACAvgLapMS),
			helper.MillisToDiff(r.DiffMS),
		})
	}
	return t.Render()
}
