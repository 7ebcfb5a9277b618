package analytics

import (
	"math"
	"sort"

	"f1acleaderboard/pkg/model"

	"gonum.org/v1/gonum/stat"
)

// leaderboardCircuitColumns is the circuit column priority of the dashboard
// filters. The joined laps fall back to circuit_ref when circuits did not join.
var leaderboardCircuitColumns = []string{"name", "circuit", "circuit_ref"}

// Selector narrows the joined laps season by season, round by round and
// circuit by circuit, and builds the leaderboard for a selection.
type Selector struct {
	rows    []joinedLap
	column  string
	lapTime func(model.LapRecord) *float64
	timeErr error
}

// NewSelector joins the dataset once for a series of selections.
func NewSelector(ds model.Dataset) *Selector {
	j := join(ds)
	column := "circuit_ref"
	if j.circuitJoined {
		if c, ok := ds.Circuits.Columns.First(leaderboardCircuitColumns...); ok {
			column = c
		}
	}
	lapTime, err := lapTimeResolver(ds.Laps.Columns)
	return &Selector{
		rows:    j.rows,
		column:  column,
		lapTime: lapTime,
		timeErr: err,
	}
}

// CircuitColumn is the column the circuit filter uses.
func (s *Selector) CircuitColumn() string {
	return s.column
}

func (s *Selector) circuitOf(row joinedLap) (string, bool) {
	if s.column == "circuit_ref" {
		return row.circuitRef, row.circuitRef != ""
	}
	if row.circuit == nil {
		return "", false
	}
	v := row.circuit.NameColumn(s.column)
	if v == nil {
		return "", false
	}
	return *v, true
}

// Seasons lists the seasons with laps, newest first.
func (s *Selector) Seasons() []int {
	set := map[int]struct{}{}
	for _, r := range s.rows {
		if r.lap.Season != nil {
			set[*r.lap.Season] = struct{}{}
		}
	}
	out := sortedInts(set)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Rounds lists the rounds of a season in ascending order.
func (s *Selector) Rounds(season int) []int {
	set := map[int]struct{}{}
	for _, r := range s.rows {
		if isSeason(r, season) && r.lap.Round != nil {
			set[*r.lap.Round] = struct{}{}
		}
	}
	return sortedInts(set)
}

// Circuits lists the circuits raced in a season round, sorted by name.
func (s *Selector) Circuits(season, round int) []string {
	set := map[string]struct{}{}
	for _, r := range s.rows {
		if !isRound(r, season, round) {
			continue
		}
		if c, ok := s.circuitOf(r); ok {
			set[c] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

type driverKey struct {
	forename string
	surname  string
}

// Leaderboard ranks the drivers of a selection by best lap. Times are in
// seconds rounded to the millisecond.
func (s *Selector) Leaderboard(season, round int, circuit string) ([]model.LeaderboardRow, error) {
	var selected []joinedLap
	for _, r := range s.rows {
		if !isRound(r, season, round) {
			continue
		}
		if c, ok := s.circuitOf(r); ok && c == circuit {
			selected = append(selected, r)
		}
	}
	if len(selected) == 0 {
		return nil, ErrNoLaps
	}
	if s.timeErr != nil {
		return nil, s.timeErr
	}

	var keys []driverKey
	laps := map[driverKey][]float64{}
	for _, r := range selected {
		ms := s.lapTime(r.lap)
		if ms == nil {
			continue
		}
		k := driverKey{}
		if r.driver != nil {
			k = driverKey{forename: r.driver.Forename, surname: r.driver.Surname}
		}
		if _, ok := laps[k]; !ok {
			keys = append(keys, k)
		}
		laps[k] = append(laps[k], *ms)
	}
	if len(keys) == 0 {
		return nil, ErrNoLaps
	}

	type entry struct {
		key  driverKey
		best float64
		avg  float64
	}
	entries := make([]entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, entry{
			key:  k,
			best: minOf(laps[k]),
			avg:  stat.Mean(laps[k], nil),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].best < entries[j].best
	})

	rows := make([]model.LeaderboardRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, model.LeaderboardRow{
			Position: i + 1,
			Forename: e.key.forename,
			Surname:  e.key.surname,
			BestLapS: msToSeconds(e.best),
			AvgLapS:  msToSeconds(e.avg),
		})
	}
	return rows, nil
}

func isSeason(r joinedLap, season int) bool {
	return r.lap.Season != nil && *r.lap.Season == season
}

func isRound(r joinedLap, season, round int) bool {
	return isSeason(r, season) && r.lap.Round != nil && *r.lap.Round == round
}

func sortedInts(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func minOf(s []float64) float64 {
	m := s[0]
	for _, v := range s[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func msToSeconds(ms float64) float64 {
	return math.Round(ms) / 1000
}
