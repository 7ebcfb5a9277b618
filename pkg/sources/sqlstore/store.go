// Package sqlstore loads tables through database/sql, either from a local
// sqlite snapshot or straight from the hosted Postgres database.
package sqlstore

import (
	"context"
	"database/sql"

	"f1acleaderboard/pkg/tables"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Store struct {
	db *sql.DB
}

// Open connects with the given driver and checks the connection.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		logrus.WithError(err).Errorf("could not open %s database", driver)
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "connecting to %s database", driver)
	}
	return New(db), nil
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadTable selects every row of the table. The column list comes from the
// result set, so an empty table still reports its columns.
func (s *Store) LoadTable(ctx context.Context, name string) (tables.Table, error) {
	query, read, err := buildSelectTableCommand(name)
	if err != nil {
		return tables.Table{}, err
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return tables.Table{}, err
	}
	columns, out, err := read(rows)
	if err != nil {
		return tables.Table{}, err
	}

	return tables.Table{Name: name, Columns: columns, Rows: out}, nil
}
