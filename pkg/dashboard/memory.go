package dashboard

import (
	"context"

	"f1acleaderboard/pkg/tables"

	"github.com/pkg/errors"
)

// MemorySource serves fixed tables; unknown names come back empty.
type MemorySource map[string]tables.Table

func (s MemorySource) LoadTable(ctx context.Context, name string) (tables.Table, error) {
	if err := ctx.Err(); err != nil {
		return tables.Table{}, errors.Wrap(err, "loading table")
	}
	if t, ok := s[name]; ok {
		return t, nil
	}
	return tables.Table{Name: name}, nil
}

// MonzaSource is a minimal dataset with one circuit on both sides.
func MonzaSource() MemorySource {
	return MemorySource{
		tables.Laps: tables.NewTable(tables.Laps, []tables.Row{
			{"driver_ref": "d1", "season": "2021", "round": "1", "circuit_ref": "monza", "milliseconds": 90000},
			{"driver_ref": "d2", "season": "2021", "round": "1", "circuit_ref": "monza", "milliseconds": 91000},
		}),
		tables.Drivers: tables.NewTable(tables.Drivers, []tables.Row{
			{"driver_ref": "d1", "forename": "Max", "surname": "Verstappen"},
			{"driver_ref": "d2", "forename": "Lewis", "surname": "Hamilton"},
		}),
		tables.Races: tables.NewTable(tables.Races, []tables.Row{
			{"year": 2021, "round": 1, "circuit_ref": "monza"},
		}),
		tables.Circuits: tables.NewTable(tables.Circuits, []tables.Row{
			{"circuit_ref": "monza", "name": "Monza"},
		}),
		tables.SimLaps: tables.NewTable(tables.SimLaps, []tables.Row{
			{"circuit": "Monza", "lap_time_ms": 89000},
		}),
	}
}
