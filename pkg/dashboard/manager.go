// Package dashboard loads the tables fresh for every request and runs the
// comparison and leaderboard computations over them.
package dashboard

import (
	"context"
	"time"

	"f1acleaderboard/pkg/analytics"
	"f1acleaderboard/pkg/metrics"
	"f1acleaderboard/pkg/model"
	"f1acleaderboard/pkg/tables"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrInsufficientData is returned when one of the real-world tables is empty.
var ErrInsufficientData = errors.New("not enough data to build the leaderboard")

// Snapshot is one comparison result, as pushed to live subscribers.
type Snapshot struct {
	At         time.Time            `json:"at"`
	Comparison analytics.Comparison `json:"comparison"`
	Error      string               `json:"error,omitempty"`
}

type Manager struct {
	source tables.Source
	names  tables.Names
}

func NewManager(source tables.Source, names tables.Names) *Manager {
	return &Manager{
		source: instrumented{source},
		names:  names,
	}
}

// Dataset loads and decodes the five tables.
func (m *Manager) Dataset(ctx context.Context) (model.Dataset, error) {
	return tables.LoadDataset(ctx, m.source, m.names)
}

// Comparison computes the F1 vs simulator comparison and logs its status.
func (m *Manager) Comparison(ctx context.Context) (analytics.Comparison, error) {
	ds, err := m.Dataset(ctx)
	if err != nil {
		metrics.Comparisons.WithLabelValues(metrics.OutcomeError).Inc()
		return analytics.Comparison{}, err
	}

	c, err := analytics.Compare(ds)
	if err != nil {
		metrics.Comparisons.WithLabelValues(metrics.OutcomeError).Inc()
		logrus.WithError(err).Error("could not compare lap times")
		return c, err
	}

	if c.Status.IsWarning() {
		metrics.Comparisons.WithLabelValues(metrics.OutcomeEmptyJoin).Inc()
		logrus.Warn(c.Status.Message)
	} else {
		metrics.Comparisons.WithLabelValues(metrics.OutcomeSuccess).Inc()
		logrus.WithField("circuits", len(c.Rows)).Info(c.Status.Message)
	}
	metrics.ComparedCircuits.Set(float64(len(c.Rows)))

	return c, nil
}

// Snapshot wraps Comparison for publishing; errors travel as text.
func (m *Manager) Snapshot(ctx context.Context) Snapshot {
	c, err := m.Comparison(ctx)
	s := Snapshot{At: time.Now(), Comparison: c}
	if err != nil {
		s.Error = err.Error()
	}
	return s
}

// Selector loads the tables and prepares the season, round and circuit
// filters.
func (m *Manager) Selector(ctx context.Context) (*analytics.Selector, error) {
	ds, err := m.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	if ds.Insufficient() {
		logrus.Warn(ErrInsufficientData.Error())
		return nil, ErrInsufficientData
	}
	return analytics.NewSelector(ds), nil
}

func (m *Manager) Leaderboard(ctx context.Context, season, round int, circuit string) ([]model.LeaderboardRow, error) {
	s, err := m.Selector(ctx)
	if err != nil {
		return nil, err
	}
	return s.Leaderboard(season, round, circuit)
}

type instrumented struct {
	tables.Source
}

func (i instrumented) LoadTable(ctx context.Context, name string) (tables.Table, error) {
	t, err := i.Source.LoadTable(ctx, name)
	if err != nil {
		metrics.TableLoads.WithLabelValues(name, "error").Inc()
		return t, err
	}
	result := "ok"
	if t.IsEmpty() {
		result = "empty"
	}
	metrics.TableLoads.WithLabelValues(name, result).Inc()
	logrus.Debugf("loaded %d rows from %s", len(t.Rows), name)
	return t, nil
}
