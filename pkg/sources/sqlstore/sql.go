package sqlstore

import (
	"database/sql"
	"fmt"
	"regexp"

	"f1acleaderboard/pkg/tables"

	"github.com/pkg/errors"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func buildSelectTableCommand(name string) (string, func(*sql.Rows) ([]string, []tables.Row, error), error) {
	if !identifier.MatchString(name) {
		return "", nil, errors.Errorf("invalid table name %q", name)
	}
	return fmt.Sprintf(`SELECT * FROM "%s"`, name), processSelectTableRows, nil
}

func processSelectTableRows(rows *sql.Rows) ([]string, []tables.Row, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	out := make([]tables.Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return columns, out, err
		}

		row := make(tables.Row, len(columns))
		for i, c := range columns {
			// drivers hand text back as []byte
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		out = append(out, row)
	}
	return columns, out, rows.Err()
}
