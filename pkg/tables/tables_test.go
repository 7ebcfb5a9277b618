package tables

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource map[string]Table

func (s stubSource) LoadTable(_ context.Context, name string) (Table, error) {
	t, ok := s[name]
	if !ok {
		return Table{}, errors.Errorf("no such table %s", name)
	}
	return t, nil
}

func TestNewTableColumns(t *testing.T) {
	tbl := NewTable("x", []Row{{"b": 1}, {"a": 2, "b": 3}})
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)
	assert.False(t, tbl.IsEmpty())
	assert.True(t, NewTable("y", nil).IsEmpty())
}

func TestDecodeLapsKeepsSourceRows(t *testing.T) {
	rows := []Row{{"driver_ref": "d1", "season": "2021", "round": "x", "milliseconds": "90000"}}
	f := DecodeLaps(NewTable(Laps, rows))

	require.Len(t, f.Records, 1)
	r := f.Records[0]
	assert.Equal(t, 2021, *r.Season)
	assert.Nil(t, r.Round)
	assert.Equal(t, 90000.0, *r.Milliseconds)
	assert.Nil(t, r.LapTime)
	assert.True(t, f.Columns.Has("milliseconds"))
	assert.False(t, f.Columns.Has("lap_time"))

	// normalization works on copies
	assert.Equal(t, "2021", rows[0]["season"])
	assert.Equal(t, "x", rows[0]["round"])
}

func TestDecodeCircuits(t *testing.T) {
	f := DecodeCircuits(NewTable(Circuits, []Row{{"circuit_ref": "spa", "name": "Spa", "location": nil}}))

	require.Len(t, f.Records, 1)
	assert.Equal(t, "Spa", *f.Records[0].NameColumn("name"))
	assert.Nil(t, f.Records[0].NameColumn("location"))
	assert.True(t, f.Columns.Has("location"))
}

func TestLoadDataset(t *testing.T) {
	src := stubSource{
		Laps:     NewTable(Laps, []Row{{"driver_ref": "d1", "milliseconds": 1}}),
		Drivers:  NewTable(Drivers, []Row{{"driver_ref": "d1"}}),
		Races:    NewTable(Races, nil),
		Circuits: NewTable(Circuits, []Row{{"circuit_ref": "c"}}),
		SimLaps:  NewTable(SimLaps, []Row{{"circuit": "C", "lap_time_ms": 2}}),
	}

	ds, err := LoadDataset(context.Background(), src, DefaultNames())
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Laps.Len())
	assert.True(t, ds.Races.IsEmpty())
	assert.True(t, ds.Insufficient())
	assert.Equal(t, "C", ds.SimLaps.Records[0].Circuit)
}

func TestLoadDatasetWrapsErrors(t *testing.T) {
	src := stubSource{Laps: NewTable(Laps, nil)}

	_, err := LoadDataset(context.Background(), src, DefaultNames())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `loading table "f1_drivers"`)
}
