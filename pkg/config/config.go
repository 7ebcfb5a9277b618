// Package config reads the process configuration from the environment.
package config

import (
	"time"

	"f1acleaderboard/pkg/tables"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	SourcePostgREST = "postgrest"
	SourceSQLite    = "sqlite"
	SourcePostgres  = "postgres"
	SourceCSV       = "csv"
)

type Config struct {
	DataSource  string `env:"DATA_SOURCE" envDefault:"postgrest"`
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_KEY"`
	DatabaseDSN string `env:"DATABASE_DSN"`
	CSVDir      string `env:"CSV_DIR"`

	// SupabasePageSize must not exceed the project's max-rows setting.
	SupabasePageSize int `env:"SUPABASE_PAGE_SIZE" envDefault:"1000"`

	WebserverAddress string `env:"WEBSERVER_ADDRESS" envDefault:":8080"`

	TelegramToken string  `env:"TELEGRAM_TOKEN"`
	NotifyChatIDs []int64 `env:"NOTIFY_CHAT_IDS" envSeparator:","`

	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"1m"`
	ImageTimeout    time.Duration `env:"IMAGE_TIMEOUT" envDefault:"5s"`
	ImageBaseURL    string        `env:"IMAGE_BASE_URL"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	LapsTable     string `env:"LAPS_TABLE" envDefault:"f1_laps"`
	DriversTable  string `env:"DRIVERS_TABLE" envDefault:"f1_drivers"`
	RacesTable    string `env:"RACES_TABLE" envDefault:"f1_races"`
	CircuitsTable string `env:"CIRCUITS_TABLE" envDefault:"f1_circuits"`
	SimLapsTable  string `env:"SIM_LAPS_TABLE" envDefault:"ac_laps"`
}

// Load parses and validates the environment.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, errors.Wrap(err, "parse env")
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.DataSource {
	case SourcePostgREST:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_KEY are required for the postgrest source")
		}
	case SourceSQLite, SourcePostgres:
		if c.DatabaseDSN == "" {
			return errors.Errorf("DATABASE_DSN is required for the %s source", c.DataSource)
		}
	case SourceCSV:
		if c.CSVDir == "" {
			return errors.New("CSV_DIR is required for the csv source")
		}
	default:
		return errors.Errorf("unknown DATA_SOURCE %q", c.DataSource)
	}
	if c.SupabasePageSize <= 0 {
		return errors.New("SUPABASE_PAGE_SIZE must be positive")
	}
	if c.RefreshInterval <= 0 {
		return errors.New("REFRESH_INTERVAL must be positive")
	}
	if c.ImageTimeout <= 0 {
		return errors.New("IMAGE_TIMEOUT must be positive")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "LOG_LEVEL")
	}
	return nil
}

// Level is the configured logrus level, info when it does not parse.
func (c Config) Level() logrus.Level {
	l, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return l
}

func (c Config) TableNames() tables.Names {
	return tables.Names{
		Laps:     c.LapsTable,
		Drivers:  c.DriversTable,
		Races:    c.RacesTable,
		Circuits: c.CircuitsTable,
		SimLaps:  c.SimLapsTable,
	}
}
