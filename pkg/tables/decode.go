package tables

import "f1acleaderboard/pkg/model"

// The decoders copy every cell into fresh typed records, so the source rows
// are never modified by normalization.

func DecodeLaps(t Table) model.Frame[model.LapRecord] {
	f := model.Frame[model.LapRecord]{Columns: t.columnSet()}
	for _, r := range t.Rows {
		f.Records = append(f.Records, model.LapRecord{
			DriverRef:    model.ToString(r["driver_ref"]),
			Season:       model.ToNullableInt(r["season"]),
			Round:        model.ToNullableInt(r["round"]),
			CircuitRef:   model.ToString(r["circuit_ref"]),
			Milliseconds: model.ToNullableFloat(r["milliseconds"]),
			LapTime:      model.ToNullableString(r["lap_time"]),
		})
	}
	return f
}

func DecodeDrivers(t Table) model.Frame[model.DriverRecord] {
	f := model.Frame[model.DriverRecord]{Columns: t.columnSet()}
	for _, r := range t.Rows {
		f.Records = append(f.Records, model.DriverRecord{
			DriverRef: model.ToString(r["driver_ref"]),
			Forename:  model.ToString(r["forename"]),
			Surname:   model.ToString(r["surname"]),
		})
	}
	return f
}

func DecodeRaces(t Table) model.Frame[model.RaceRecord] {
	f := model.Frame[model.RaceRecord]{Columns: t.columnSet()}
	for _, r := range t.Rows {
		f.Records = append(f.Records, model.RaceRecord{
			Year:       model.ToNullableInt(r["year"]),
			Round:      model.ToNullableInt(r["round"]),
			CircuitRef: model.ToString(r["circuit_ref"]),
		})
	}
	return f
}

func DecodeCircuits(t Table) model.Frame[model.CircuitRecord] {
	f := model.Frame[model.CircuitRecord]{Columns: t.columnSet()}
	for _, r := range t.Rows {
		f.Records = append(f.Records, model.CircuitRecord{
			CircuitRef:  model.ToString(r["circuit_ref"]),
			Name:        model.ToNullableString(r["name"]),
			CircuitName: model.ToNullableString(r["circuit_name"]),
			Circuit:     model.ToNullableString(r["circuit"]),
			Track:       model.ToNullableString(r["track"]),
			Location:    model.ToNullableString(r["location"]),
		})
	}
	return f
}

func DecodeSimLaps(t Table) model.Frame[model.SimLapRecord] {
	f := model.Frame[model.SimLapRecord]{Columns: t.columnSet()}
	for _, r := range t.Rows {
		f.Records = append(f.Records, model.SimLapRecord{
			Circuit:   model.ToString(r["circuit"]),
			LapTimeMS: model.ToNullableFloat(r["lap_time_ms"]),
		})
	}
	return f
}
