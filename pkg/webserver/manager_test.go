package webserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"f1acleaderboard/pkg/analytics"
	"f1acleaderboard/pkg/circuitimage"
	"f1acleaderboard/pkg/dashboard"
	"f1acleaderboard/pkg/model"
	"f1acleaderboard/pkg/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImages struct {
	err error
}

func (f fakeImages) Fetch(_ context.Context, circuit string) (circuitimage.Image, error) {
	if f.err != nil {
		return circuitimage.Image{}, f.err
	}
	return circuitimage.Image{Circuit: circuit, ContentType: "image/png", Data: []byte("png")}, nil
}

func newTestServer(t *testing.T, src dashboard.MemorySource, images ImageFetcher) *httptest.Server {
	t.Helper()
	m := NewManager(dashboard.NewManager(src, tables.DefaultNames()), images, nil)
	srv := httptest.NewServer(m.Router())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestComparisonJSON(t *testing.T) {
	srv := newTestServer(t, dashboard.MonzaSource(), fakeImages{})

	resp := get(t, srv, "/api/comparison")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(headerWarning))

	c := decode[analytics.Comparison](t, resp)
	require.Len(t, c.Rows, 1)
	assert.Equal(t, "Monza", c.Rows[0].CircuitName)
	assert.Equal(t, -1500.0, c.Rows[0].DiffMS)
}

func TestComparisonEmptyJoinWarns(t *testing.T) {
	src := dashboard.MonzaSource()
	src[tables.Races] = tables.NewTable(tables.Races, []tables.Row{
		{"year": 1999, "round": 1, "circuit_ref": "monza"},
	})
	srv := newTestServer(t, src, fakeImages{})

	resp := get(t, srv, "/api/comparison")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(headerWarning))

	c := decode[analytics.Comparison](t, resp)
	assert.Empty(t, c.Rows)
	assert.True(t, c.Status.IsWarning())
}

func TestComparisonSchemaErrorIs422(t *testing.T) {
	src := dashboard.MonzaSource()
	src[tables.Laps] = tables.NewTable(tables.Laps, []tables.Row{
		{"driver_ref": "d1", "season": 2021, "round": 1, "circuit_ref": "monza"},
	})
	srv := newTestServer(t, src, fakeImages{})

	resp := get(t, srv, "/api/comparison")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, decode[errorResponse](t, resp).Error, "missing column")
}

func TestComparisonText(t *testing.T) {
	srv := newTestServer(t, dashboard.MonzaSource(), fakeImages{})

	resp := get(t, srv, "/comparison")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, "Monza")
	assert.Contains(t, body, "01:30.500")
	assert.Contains(t, body, "analysis complete: 1 circuits compared")
}

func TestComparisonDownloads(t *testing.T) {
	srv := newTestServer(t, dashboard.MonzaSource(), fakeImages{})

	chart := get(t, srv, "/comparison/chart")
	assert.Equal(t, http.StatusOK, chart.StatusCode)
	assert.Contains(t, chart.Header.Get("Content-Type"), "text/html")

	picture := get(t, srv, "/comparison.png")
	assert.Equal(t, http.StatusOK, picture.StatusCode)
	assert.Equal(t, "image/png", picture.Header.Get("Content-Type"))

	xlsx := get(t, srv, "/comparison.xlsx")
	assert.Equal(t, http.StatusOK, xlsx.StatusCode)
	assert.Equal(t, contentXLSX, xlsx.Header.Get("Content-Type"))
}

func TestSelectionRoutes(t *testing.T) {
	srv := newTestServer(t, dashboard.MonzaSource(), fakeImages{})

	assert.Equal(t, []int{2021}, decode[[]int](t, get(t, srv, "/api/seasons")))
	assert.Equal(t, []int{1}, decode[[]int](t, get(t, srv, "/api/seasons/2021/rounds")))
	assert.Equal(t, []string{"Monza"}, decode[[]string](t, get(t, srv, "/api/seasons/2021/rounds/1/circuits")))
	assert.Empty(t, decode[[]int](t, get(t, srv, "/api/seasons/2020/rounds")))
}

func TestLeaderboardRoute(t *testing.T) {
	srv := newTestServer(t, dashboard.MonzaSource(), fakeImages{})

	resp := get(t, srv, "/api/leaderboard?season=2021&round=1&circuit=Monza")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := decode[[]model.LeaderboardRow](t, resp)
	require.Len(t, rows, 2)
	assert.Equal(t, "Verstappen", rows[0].Surname)
	assert.Equal(t, 90.0, rows[0].BestLapS)

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/api/leaderboard?season=2021&round=1&circuit=Spa").StatusCode)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/leaderboard?season=x&round=1&circuit=Monza").StatusCode)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/leaderboard?season=2021&round=1").StatusCode)

	xlsx := get(t, srv, "/leaderboard.xlsx?season=2021&round=1&circuit=Monza")
	assert.Equal(t, http.StatusOK, xlsx.StatusCode)
}

func TestLeaderboardText(t *testing.T) {
	srv := newTestServer(t, dashboard.MonzaSource(), fakeImages{})

	resp := get(t, srv, "/leaderboard?season=2021&round=1&circuit=Monza")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	for _, want := range []string{"POS", "NOMBRE", "APELLIDO", "MEJOR (S)", "MEDIA (S)", "Max", "Verstappen", "90.000", "Hamilton", "91.000"} {
		assert.Contains(t, body, want)
	}
	assert.Less(t, strings.Index(body, "Verstappen"), strings.Index(body, "Hamilton"))

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/leaderboard?season=2021&round=1&circuit=Spa").StatusCode)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/leaderboard?season=2021").StatusCode)
}

func TestInsufficientDataIs503(t *testing.T) {
	src := dashboard.MonzaSource()
	delete(src, tables.Drivers)
	srv := newTestServer(t, src, fakeImages{})

	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, "/api/seasons").StatusCode)
}

func TestCircuitImage(t *testing.T) {
	srv := newTestServer(t, dashboard.MonzaSource(), fakeImages{})
	resp := get(t, srv, "/circuits/Monza/image")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	failing := newTestServer(t, dashboard.MonzaSource(), fakeImages{
		err: &circuitimage.UnavailableError{Circuit: "Monza", Status: http.StatusNotFound},
	})
	resp = get(t, failing, "/circuits/Monza/image")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(headerWarning))
}

func TestMetricsRoute(t *testing.T) {
	srv := newTestServer(t, dashboard.MonzaSource(), fakeImages{})
	get(t, srv, "/api/comparison")

	resp := get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
