// Package csvdir reads each table from <dir>/<table>.csv, header first.
package csvdir

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"f1acleaderboard/pkg/tables"

	"github.com/pkg/errors"
)

type Source struct {
	dir string
}

func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

func (s *Source) path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

// LoadTable reads the table file. A missing file is an empty table, and empty
// cells are left out of their row so they decode as null.
func (s *Source) LoadTable(ctx context.Context, name string) (tables.Table, error) {
	if filepath.Base(name) != name {
		return tables.Table{}, errors.Errorf("invalid table name %q", name)
	}

	f, err := os.Open(s.path(name))
	if os.IsNotExist(err) {
		return tables.Table{Name: name}, nil
	}
	if err != nil {
		return tables.Table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return tables.Table{Name: name}, nil
	}
	if err != nil {
		return tables.Table{}, errors.Wrapf(err, "reading header of %s", s.path(name))
	}

	rows := make([]tables.Row, 0)
	for {
		if err := ctx.Err(); err != nil {
			return tables.Table{}, err
		}
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return tables.Table{}, errors.Wrapf(err, "reading %s", s.path(name))
		}

		row := make(tables.Row, len(header))
		for i, column := range header {
			if i < len(rec) && rec[i] != "" {
				row[column] = rec[i]
			}
		}
		rows = append(rows, row)
	}

	return tables.Table{Name: name, Columns: header, Rows: rows}, nil
}
