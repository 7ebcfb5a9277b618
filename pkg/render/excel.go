package render

import (
	"io"

	"f1acleaderboard/pkg/model"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	sheetComparison  = "Comparacion"
	sheetLeaderboard = "Clasificacion"
)

// WriteComparisonXLSX writes the comparison as a one sheet workbook.
func WriteComparisonXLSX(w io.Writer, rows []model.ComparisonRow) error {
	header := []any{"Circuito", "F1 media (ms)", "AC media (ms)", "Dif (ms)"}
	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{r.CircuitName, r.F1AvgLapMS, r.ACAvgLapMS, r.DiffMS})
	}
	return writeSheet(w, sheetComparison, header, data)
}

// WriteLeaderboardXLSX writes a leaderboard as a one sheet workbook.
func WriteLeaderboardXLSX(w io.Writer, rows []model.LeaderboardRow) error {
	header := []any{"Posicion", "Nombre", "Apellido", "Mejor vuelta (s)", "Media (s)"}
	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{r.Position, r.Forename, r.Surname, r.BestLapS, r.AvgLapS})
	}
	return writeSheet(w, sheetLeaderboard, header, data)
}

func writeSheet(w io.Writer, sheet string, header []any, data [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, row := range append([][]any{header}, data...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "writing row %d", i+1)
		}
	}

	_, err := f.WriteTo(w)
	return err
}
