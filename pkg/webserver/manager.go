// Package webserver exposes the comparison and the leaderboard over HTTP.
package webserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"f1acleaderboard/pkg/analytics"
	"f1acleaderboard/pkg/circuitimage"
	"f1acleaderboard/pkg/metrics"
	"f1acleaderboard/pkg/model"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const DefaultAddress = ":8080"

// Dashboard computes the views served by the webserver.
type Dashboard interface {
	Comparison(ctx context.Context) (analytics.Comparison, error)
	Selector(ctx context.Context) (*analytics.Selector, error)
	Leaderboard(ctx context.Context, season, round int, circuit string) ([]model.LeaderboardRow, error)
}

type ImageFetcher interface {
	Fetch(ctx context.Context, circuit string) (circuitimage.Image, error)
}

type Manager struct {
	r      *mux.Router
	dash   Dashboard
	images ImageFetcher
	live   http.Handler
}

// NewManager registers every route. live may be nil, in which case the
// websocket route is not served.
func NewManager(dash Dashboard, images ImageFetcher, live http.Handler) *Manager {
	m := &Manager{
		r:      mux.NewRouter(),
		dash:   dash,
		images: images,
		live:   live,
	}

	m.apiHandlers()
	m.rootHandlers()
	return m
}

func (m *Manager) Router() *mux.Router {
	return m.r
}

func (m *Manager) apiHandlers() {
	api := m.r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/seasons", m.seasons).Methods(http.MethodGet)
	api.HandleFunc("/seasons/{season:[0-9]+}/rounds", m.rounds).Methods(http.MethodGet)
	api.HandleFunc("/seasons/{season:[0-9]+}/rounds/{round:[0-9]+}/circuits", m.circuits).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", m.leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/comparison", m.comparison).Methods(http.MethodGet)
}

func (m *Manager) rootHandlers() {
	m.r.HandleFunc("/comparison", m.comparisonText).Methods(http.MethodGet)
	m.r.HandleFunc("/comparison/chart", m.comparisonChart).Methods(http.MethodGet)
	m.r.HandleFunc("/comparison.png", m.comparisonPNG).Methods(http.MethodGet)
	m.r.HandleFunc("/comparison.xlsx", m.comparisonXLSX).Methods(http.MethodGet)
	m.r.HandleFunc("/leaderboard", m.leaderboardText).Methods(http.MethodGet)
	m.r.HandleFunc("/leaderboard.xlsx", m.leaderboardXLSX).Methods(http.MethodGet)
	m.r.HandleFunc("/circuits/{name}/image", m.circuitImage).Methods(http.MethodGet)
	if m.live != nil {
		m.r.Handle("/ws/comparison", m.live)
	}
	m.r.Handle("/metrics", metrics.Handler())
}

// Debug logs every registered route.
func (m *Manager) Debug() {
	_ = m.r.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, _ := route.GetMethods()
		logrus.Debugf("route %s [%s]", pathTemplate, strings.Join(methods, ","))
		return nil
	})
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (m *Manager) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddress
	}
	srv := &http.Server{
		Addr:         addr,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.r,
	}

	errChan := make(chan error, 1)
	go func() {
		logrus.Infof("webserver listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return errors.Wrap(err, "webserver")
	case <-ctx.Done():
	}

	// Doesn't block if no connections, but will otherwise wait until the
	// timeout deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logrus.Info("webserver shutting down")
	return srv.Shutdown(shutdownCtx)
}
