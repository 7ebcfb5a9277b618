package webserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"f1acleaderboard/pkg/analytics"
	"f1acleaderboard/pkg/circuitimage"
	"f1acleaderboard/pkg/dashboard"
	"f1acleaderboard/pkg/metrics"
	"f1acleaderboard/pkg/render"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	headerWarning = "X-Warning"
	contentXLSX   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, analytics.ErrMissingColumn):
		return http.StatusUnprocessableEntity
	case errors.Is(err, analytics.ErrNoLaps):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrInsufficientData):
		return http.StatusServiceUnavailable
	case errors.Is(err, circuitimage.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	entry := logrus.WithError(err).WithField("path", r.URL.Path)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		entry.Error("request failed")
	} else {
		entry.Warn("request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Debug("could not write response")
	}
}

func writeBody(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(body); err != nil {
		logrus.WithError(err).Debug("could not write response")
	}
}

func intVar(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	return v, errors.Wrapf(err, "invalid %s", name)
}

func (m *Manager) seasons(w http.ResponseWriter, r *http.Request) {
	s, err := m.dash.Selector(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Seasons())
}

func (m *Manager) rounds(w http.ResponseWriter, r *http.Request) {
	season, err := intVar(r, "season")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s, err := m.dash.Selector(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Rounds(season))
}

func (m *Manager) circuits(w http.ResponseWriter, r *http.Request) {
	season, err := intVar(r, "season")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	round, err := intVar(r, "round")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s, err := m.dash.Selector(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Circuits(season, round))
}

type selection struct {
	season  int
	round   int
	circuit string
}

func parseSelection(r *http.Request) (selection, error) {
	q := r.URL.Query()
	var sel selection
	var err error
	if sel.season, err = strconv.Atoi(q.Get("season")); err != nil {
		return sel, errors.New("season must be an integer")
	}
	if sel.round, err = strconv.Atoi(q.Get("round")); err != nil {
		return sel, errors.New("round must be an integer")
	}
	sel.circuit = q.Get("circuit")
	if sel.circuit == "" {
		return sel, errors.New("circuit is required")
	}
	return sel, nil
}

func (m *Manager) leaderboard(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	rows, err := m.dash.Leaderboard(r.Context(), sel.season, sel.round, sel.circuit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (m *Manager) leaderboardText(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	rows, err := m.dash.Leaderboard(r.Context(), sel.season, sel.round, sel.circuit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	title := fmt.Sprintf("Clasificación en %q (%d, ronda %d)", sel.circuit, sel.season, sel.round)
	body := title + "\n\n" + render.LeaderboardTable(rows) + "\n"
	writeBody(w, "text/plain; charset=utf-8", []byte(body))
}

func (m *Manager) leaderboardXLSX(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	rows, err := m.dash.Leaderboard(r.Context(), sel.season, sel.round, sel.circuit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var b bytes.Buffer
	if err := render.WriteLeaderboardXLSX(&b, rows); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
	writeBody(w, contentXLSX, b.Bytes())
}

// comparisonFor runs the comparison and copies a warning status into the
// response headers. It writes the error response itself and reports false
// on failure.
func (m *Manager) comparisonFor(w http.ResponseWriter, r *http.Request) (analytics.Comparison, bool) {
	c, err := m.dash.Comparison(r.Context())
	if err != nil {
		writeError(w, r, err)
		return c, false
	}
	if c.Status.IsWarning() {
		w.Header().Set(headerWarning, c.Status.Message)
	}
	return c, true
}

func (m *Manager) comparison(w http.ResponseWriter, r *http.Request) {
	c, ok := m.comparisonFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (m *Manager) comparisonText(w http.ResponseWriter, r *http.Request) {
	c, ok := m.comparisonFor(w, r)
	if !ok {
		return
	}
	body := c.Status.Message + "\n\n" + render.ComparisonTable(c.Rows) + "\n"
	writeBody(w, "text/plain; charset=utf-8", []byte(body))
}

func (m *Manager) comparisonChart(w http.ResponseWriter, r *http.Request) {
	c, ok := m.comparisonFor(w, r)
	if !ok {
		return
	}
	var b bytes.Buffer
	if err := render.ComparisonChart(&b, c.Rows); err != nil {
		writeError(w, r, err)
		return
	}
	writeBody(w, "text/html; charset=utf-8", b.Bytes())
}

func (m *Manager) comparisonPNG(w http.ResponseWriter, r *http.Request) {
	c, ok := m.comparisonFor(w, r)
	if !ok {
		return
	}
	var b bytes.Buffer
	if err := render.ComparisonPNG(&b, c.Rows); err != nil {
		writeError(w, r, err)
		return
	}
	writeBody(w, "image/png", b.Bytes())
}

func (m *Manager) comparisonXLSX(w http.ResponseWriter, r *http.Request) {
	c, ok := m.comparisonFor(w, r)
	if !ok {
		return
	}
	var b bytes.Buffer
	if err := render.WriteComparisonXLSX(&b, c.Rows); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="comparison.xlsx"`)
	writeBody(w, contentXLSX, b.Bytes())
}

func (m *Manager) circuitImage(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	img, err := m.images.Fetch(r.Context(), name)
	if err != nil {
		metrics.ImageFailures.Inc()
		w.Header().Set(headerWarning, "No se pudo cargar la imagen del circuito "+name)
		writeError(w, r, err)
		return
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = "image/png"
	}
	writeBody(w, contentType, img.Data)
}
