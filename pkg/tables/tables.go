package tables

import (
	"context"
	"sort"

	"f1acleaderboard/pkg/model"

	"github.com/pkg/errors"
)

const (
	Laps     = "f1_laps"
	Drivers  = "f1_drivers"
	Races    = "f1_races"
	Circuits = "f1_circuits"
	SimLaps  = "ac_laps"
)

// Row is one record as returned by a source, keyed by column name.
type Row map[string]any

// Table is an untyped snapshot of a remote table.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// NewTable builds a table whose columns are the union of the row keys.
func NewTable(name string, rows []Row) Table {
	seen := map[string]struct{}{}
	var columns []string
	for _, r := range rows {
		for k := range r {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)
	return Table{Name: name, Columns: columns, Rows: rows}
}

func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

func (t Table) columnSet() model.Columns {
	return model.NewColumns(t.Columns...)
}

// Source loads a whole table by name. A table without data comes back empty,
// not as an error.
type Source interface {
	LoadTable(ctx context.Context, name string) (Table, error)
}

// Names maps the dataset roles to the table names of a concrete source.
type Names struct {
	Laps     string
	Drivers  string
	Races    string
	Circuits string
	SimLaps  string
}

func DefaultNames() Names {
	return Names{
		Laps:     Laps,
		Drivers:  Drivers,
		Races:    Races,
		Circuits: Circuits,
		SimLaps:  SimLaps,
	}
}

// LoadDataset loads the five tables from src and decodes them.
func LoadDataset(ctx context.Context, src Source, names Names) (model.Dataset, error) {
	var ds model.Dataset

	load := func(name string) (Table, error) {
		t, err := src.LoadTable(ctx, name)
		if err != nil {
			return t, errors.Wrapf(err, "loading table %q", name)
		}
		return t, nil
	}

	laps, err := load(names.Laps)
	if err != nil {
		return ds, err
	}
	drivers, err := load(names.Drivers)
	if err != nil {
		return ds, err
	}
	races, err := load(names.Races)
	if err != nil {
		return ds, err
	}
	circuits, err := load(names.Circuits)
	if err != nil {
		return ds, err
	}
	simLaps, err := load(names.SimLaps)
	if err != nil {
		return ds, err
	}

	ds.Laps = DecodeLaps(laps)
	ds.Drivers = DecodeDrivers(drivers)
	ds.Races = DecodeRaces(races)
	ds.Circuits = DecodeCircuits(circuits)
	ds.SimLaps = DecodeSimLaps(simLaps)
	return ds, nil
}
