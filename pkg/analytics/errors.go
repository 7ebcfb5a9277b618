package analytics

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrMissingColumn marks a structural mismatch in the input tables. It is
	// never retried.
	ErrMissingColumn = errors.New("missing column")

	// ErrNoLaps is returned when a leaderboard selection has no timed laps.
	ErrNoLaps = errors.New("no laps for selection")
)

// MissingColumnError names the table and the columns that were looked for.
type MissingColumnError struct {
	Table      string
	Candidates []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: none of [%s] found in %s", ErrMissingColumn, strings.Join(e.Candidates, ", "), e.Table)
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

func missingColumn(table string, candidates ...string) error {
	return &MissingColumnError{Table: table, Candidates: candidates}
}
