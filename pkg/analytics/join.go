package analytics

import "f1acleaderboard/pkg/model"

// joinedLap is one lap after the left joins with drivers, races and circuits.
type joinedLap struct {
	lap        model.LapRecord
	driver     *model.DriverRecord
	race       *model.RaceRecord
	circuit    *model.CircuitRecord
	circuitRef string
}

type raceKey struct {
	year  int
	round int
}

// joined is the result of the three left joins, plus which optional sides
// took part.
type joined struct {
	rows          []joinedLap
	circuitJoined bool
	raceMatches   int
	laps          model.Columns
}

// empty reports whether the join produced nothing to aggregate: no laps at
// all, or no lap whose season and round overlap a race.
func (j joined) empty() bool {
	return len(j.rows) == 0 || j.raceMatches == 0
}

// join left-joins laps with drivers on driver_ref, with races on
// (season, round) = (year, round) and, when both sides carry circuit_ref,
// with circuits on circuit_ref. Left rows are kept even without a match; a
// right side with duplicate keys multiplies the left row.
func join(ds model.Dataset) joined {
	drivers := map[string][]int{}
	for i, d := range ds.Drivers.Records {
		drivers[d.DriverRef] = append(drivers[d.DriverRef], i)
	}

	races := map[raceKey][]int{}
	for i, r := range ds.Races.Records {
		if r.Year == nil || r.Round == nil {
			continue
		}
		k := raceKey{year: *r.Year, round: *r.Round}
		races[k] = append(races[k], i)
	}

	mergedHasRef := ds.Laps.Columns.Has("circuit_ref") || ds.Races.Columns.Has("circuit_ref")
	circuitJoined := mergedHasRef && ds.Circuits.Columns.Has("circuit_ref")
	circuits := map[string][]int{}
	if circuitJoined {
		for i, c := range ds.Circuits.Records {
			circuits[c.CircuitRef] = append(circuits[c.CircuitRef], i)
		}
	}

	out := joined{circuitJoined: circuitJoined, laps: ds.Laps.Columns}
	for _, lap := range ds.Laps.Records {
		for _, d := range matches(drivers[lap.DriverRef], ds.Drivers.Records) {
			var rs []*model.RaceRecord
			if lap.Season != nil && lap.Round != nil {
				rs = matches(races[raceKey{year: *lap.Season, round: *lap.Round}], ds.Races.Records)
			} else {
				rs = []*model.RaceRecord{nil}
			}
			for _, r := range rs {
				if r != nil {
					out.raceMatches++
				}
				ref := lap.CircuitRef
				if ref == "" && r != nil {
					ref = r.CircuitRef
				}
				cs := []*model.CircuitRecord{nil}
				if circuitJoined {
					cs = matches(circuits[ref], ds.Circuits.Records)
				}
				for _, c := range cs {
					out.rows = append(out.rows, joinedLap{
						lap:        lap,
						driver:     d,
						race:       r,
						circuit:    c,
						circuitRef: ref,
					})
				}
			}
		}
	}
	return out
}

// matches resolves the indexes of a lookup into pointers; no match yields a
// single nil so the left row survives.
func matches[T any](idx []int, records []T) []*T {
	if len(idx) == 0 {
		return []*T{nil}
	}
	out := make([]*T, 0, len(idx))
	for _, i := range idx {
		out = append(out, &records[i])
	}
	return out
}
