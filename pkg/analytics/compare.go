package analytics

import (
	"sort"

	"f1acleaderboard/pkg/model"

	"gonum.org/v1/gonum/stat"
)

// CircuitNameColumns is the priority order used to pick the circuit display
// name for the comparison.
var CircuitNameColumns = []string{"name", "circuit_name", "circuit", "track", "location"}

// Comparison is the result of Compare. Rows is empty, not nil, when nothing
// could be joined.
type Comparison struct {
	Rows   []model.ComparisonRow `json:"rows"`
	Status Status                `json:"status"`
}

// Compare joins real laps with drivers, races and circuits, averages the lap
// time per circuit, and compares it with the simulator average for the
// circuit of the same name. Missing averages count as zero and the rows come
// back sorted by ascending difference, simulator faster first.
func Compare(ds model.Dataset) (Comparison, error) {
	j := join(ds)
	if j.empty() {
		return Comparison{Rows: []model.ComparisonRow{}, Status: emptyJoinStatus()}, nil
	}

	lapTime, err := lapTimeResolver(j.laps)
	if err != nil {
		return Comparison{}, err
	}

	column, err := circuitNameColumn(j, ds.Circuits.Columns)
	if err != nil {
		return Comparison{}, err
	}

	f1 := newGroups()
	for _, row := range j.rows {
		ms := lapTime(row.lap)
		if ms == nil {
			continue
		}
		f1.add(circuitDisplayName(row, column), ms)
	}

	ac := newGroups()
	if !ds.SimLaps.IsEmpty() && ds.SimLaps.Columns.Has("circuit") {
		for _, lap := range ds.SimLaps.Records {
			ac.add(lap.Circuit, lap.LapTimeMS)
		}
	}

	rows := outerJoin(f1, ac)
	return Comparison{Rows: rows, Status: comparedStatus(len(rows))}, nil
}

// lapTimeResolver picks the lap time source for the whole table: the
// milliseconds column as is, otherwise lap_time parsed as a number.
func lapTimeResolver(laps model.Columns) (func(model.LapRecord) *float64, error) {
	switch {
	case laps.Has("milliseconds"):
		return func(l model.LapRecord) *float64 { return l.Milliseconds }, nil
	case laps.Has("lap_time"):
		return func(l model.LapRecord) *float64 {
			if l.LapTime == nil {
				return nil
			}
			return model.ToNullableFloat(*l.LapTime)
		}, nil
	}
	return nil, missingColumn("laps", "milliseconds", "lap_time")
}

// circuitNameColumn resolves the display name column. Name columns only exist
// in the joined table when the circuits join took place.
func circuitNameColumn(j joined, circuits model.Columns) (string, error) {
	if j.circuitJoined {
		if c, ok := circuits.First(CircuitNameColumns...); ok {
			return c, nil
		}
	}
	return "", missingColumn("circuits", CircuitNameColumns...)
}

// circuitDisplayName groups laps without a circuit match under "".
func circuitDisplayName(row joinedLap, column string) string {
	if row.circuit == nil {
		return ""
	}
	if v := row.circuit.NameColumn(column); v != nil {
		return *v
	}
	return ""
}

// groups keeps per-key samples in first-seen key order.
type groups struct {
	keys    []string
	samples map[string][]float64
}

func newGroups() *groups {
	return &groups{samples: map[string][]float64{}}
}

// add registers key even when v is nil, so a key whose samples are all
// missing still shows up with no mean.
func (g *groups) add(key string, v *float64) {
	s, ok := g.samples[key]
	if !ok {
		g.keys = append(g.keys, key)
	}
	if v != nil {
		s = append(s, *v)
	}
	g.samples[key] = s
}

func (g *groups) mean(key string) (float64, bool) {
	s, ok := g.samples[key]
	if !ok || len(s) == 0 {
		return 0, false
	}
	return stat.Mean(s, nil), true
}

func outerJoin(f1, ac *groups) []model.ComparisonRow {
	seen := map[string]struct{}{}
	var names []string
	for _, k := range append(append([]string{}, f1.keys...), ac.keys...) {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		names = append(names, k)
	}
	sort.Strings(names)

	rows := make([]model.ComparisonRow, 0, len(names))
	for _, name := range names {
		f1Avg, hasF1 := f1.mean(name)
		acAvg, hasAC := ac.mean(name)
		rows = append(rows, model.ComparisonRow{
			CircuitName: name,
			F1AvgLapMS:  f1Avg,
			ACAvgLapMS:  acAvg,
			DiffMS:      diff(acAvg, hasAC, f1Avg, hasF1),
			HasF1:       hasF1,
			HasAC:       hasAC,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DiffMS < rows[j].DiffMS
	})
	return rows
}

// diff is ac - f1 when both sides exist and 0 otherwise: with either side
// missing the subtraction has no value and the null is filled with zero.
func diff(ac float64, hasAC bool, f1 float64, hasF1 bool) float64 {
	if !hasAC || !hasF1 {
		return 0
	}
	return ac - f1
}
