package analytics

import "fmt"

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// Status is the human readable outcome of a computation.
type Status struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func (s Status) IsWarning() bool {
	return s.Level == LevelWarning
}

func emptyJoinStatus() Status {
	return Status{
		Level:   LevelWarning,
		Message: "join produced no rows: check that lap season/round match race year/round",
	}
}

func comparedStatus(n int) Status {
	return Status{
		Level:   LevelSuccess,
		Message: fmt.Sprintf("analysis complete: %d circuits compared", n),
	}
}
