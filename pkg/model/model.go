package model

// Columns is the set of column names a source returned for a table.
type Columns map[string]struct{}

func NewColumns(names ...string) Columns {
	c := make(Columns, len(names))
	for _, n := range names {
		c[n] = struct{}{}
	}
	return c
}

func (c Columns) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// First returns the first of the candidates present in c.
func (c Columns) First(candidates ...string) (string, bool) {
	for _, name := range candidates {
		if c.Has(name) {
			return name, true
		}
	}
	return "", false
}

// Frame is a decoded table: typed records plus the columns the source carried.
type Frame[T any] struct {
	Columns Columns
	Records []T
}

func (f Frame[T]) Len() int {
	return len(f.Records)
}

func (f Frame[T]) IsEmpty() bool {
	return len(f.Records) == 0
}

// LapRecord is one lap driven in a real race.
type LapRecord struct {
	DriverRef    string   `json:"driver_ref"`
	Season       *int     `json:"season"`
	Round        *int     `json:"round"`
	CircuitRef   string   `json:"circuit_ref"`
	Milliseconds *float64 `json:"milliseconds,omitempty"`
	LapTime      *string  `json:"lap_time,omitempty"`
}

type DriverRecord struct {
	DriverRef string `json:"driver_ref"`
	Forename  string `json:"forename"`
	Surname   string `json:"surname"`
}

// RaceRecord keys a race by (Year, Round), the same pair a lap carries as (Season, Round).
type RaceRecord struct {
	Year       *int   `json:"year"`
	Round      *int   `json:"round"`
	CircuitRef string `json:"circuit_ref"`
}

// CircuitRecord carries every name-like column a circuits table may use.
type CircuitRecord struct {
	CircuitRef  string  `json:"circuit_ref"`
	Name        *string `json:"name,omitempty"`
	CircuitName *string `json:"circuit_name,omitempty"`
	Circuit     *string `json:"circuit,omitempty"`
	Track       *string `json:"track,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// NameColumn returns the value of the given name-like column.
func (c CircuitRecord) NameColumn(column string) *string {
	switch column {
	case "name":
		return c.Name
	case "circuit_name":
		return c.CircuitName
	case "circuit":
		return c.Circuit
	case "track":
		return c.Track
	case "location":
		return c.Location
	}
	return nil
}

// SimLapRecord is one Assetto Corsa lap; Circuit is free text.
type SimLapRecord struct {
	Circuit   string   `json:"circuit"`
	LapTimeMS *float64 `json:"lap_time_ms"`
}

type ComparisonRow struct {
	CircuitName string  `json:"circuit_name"`
	F1AvgLapMS  float64 `json:"f1_avg_lap_ms"`
	ACAvgLapMS  float64 `json:"ac_avg_lap_ms"`
	DiffMS      float64 `json:"diff_ms"`
	// HasF1 and HasAC tell a missing aggregate apart from a real zero.
	HasF1 bool `json:"has_f1"`
	HasAC bool `json:"has_ac"`
}

type LeaderboardRow struct {
	Position int     `json:"position"`
	Forename string  `json:"forename"`
	Surname  string  `json:"surname"`
	BestLapS float64 `json:"best_lap_s"`
	AvgLapS  float64 `json:"avg_lap_s"`
}

// Dataset groups the input tables of one computation.
type Dataset struct {
	Laps     Frame[LapRecord]
	Drivers  Frame[DriverRecord]
	Races    Frame[RaceRecord]
	Circuits Frame[CircuitRecord]
	SimLaps  Frame[SimLapRecord]
}

// Insufficient reports whether any of the real-world tables came back empty.
func (d Dataset) Insufficient() bool {
	return d.Laps.IsEmpty() || d.Drivers.IsEmpty() || d.Races.IsEmpty() || d.Circuits.IsEmpty()
}
