package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"f1acleaderboard/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var (
	comparison = []model.ComparisonRow{
		{CircuitName: "Monza", F1AvgLapMS: 90000, ACAvgLapMS: 89000, DiffMS: -1000, HasF1: true, HasAC: true},
		{CircuitName: "Spa", F1AvgLapMS: 105000, HasF1: true},
	}
	leaderboard = []model.LeaderboardRow{
		{Position: 1, Forename: "Max", Surname: "Verstappen", BestLapS: 91.5, AvgLapS: 92.25},
		{Position: 2, Forename: "Lewis", Surname: "Hamilton", BestLapS: 92, AvgLapS: 93},
	}
)

func TestComparisonTable(t *testing.T) {
	out := ComparisonTable(comparison)

	// go-pretty upper-cases headers in the rounded style
	assert.Contains(t, out, "CIRCUITO")
	assert.Contains(t, out, "DIF")
	assert.Contains(t, out, "Monza")
	assert.Contains(t, out, "01:30.000")
	assert.Contains(t, out, "01:29.000")
	assert.Contains(t, out, "-1.000s")
	assert.Contains(t, out, "╭")
}

func TestLeaderboardTable(t *testing.T) {
	out := LeaderboardTable(leaderboard)
	for _, header := range []string{"POS", "PIL", "NOMBRE", "APELLIDO", "MEJOR (S)", "MEDIA (S)"} {
		assert.Contains(t, out, header)
	}
	assert.Contains(t, out, "VER")
	assert.Contains(t, out, "Max")
	assert.Contains(t, out, "Verstappen")
	assert.Contains(t, out, "91.500")
	assert.Contains(t, out, "92.250")
	assert.Less(t, strings.Index(out, "Verstappen"), strings.Index(out, "Hamilton"))
}

func TestComparisonChart(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, ComparisonChart(&b, comparison))

	html := b.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "Monza")
	assert.Contains(t, html, "Assetto Corsa")
}

func TestWriteComparisonXLSX(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteComparisonXLSX(&b, comparison))

	f, err := excelize.OpenReader(&b)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetComparison)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Circuito", rows[0][0])
	assert.Equal(t, []string{"Monza", "90000", "89000", "-1000"}, rows[1])
}

func TestWriteLeaderboardXLSX(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteLeaderboardXLSX(&b, leaderboard))

	f, err := excelize.OpenReader(&b)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetLeaderboard)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "Max", "Verstappen", "91.5", "92.25"}, rows[1])
}

func TestComparisonPNG(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, ComparisonPNG(&b, comparison))

	img, err := png.Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, pictureWidth, img.Bounds().Dx())
	assert.Equal(t, pictureHeight, img.Bounds().Dy())

	rgb := func(x, y int) (uint32, uint32, uint32) {
		r, g, b, _ := img.At(x, y).RGBA()
		return r >> 8, g >> 8, b >> 8
	}

	// Monza F1 bar
	r, g, _ := rgb(150, 400)
	assert.Greater(t, r, uint32(200))
	assert.Less(t, g, uint32(50))

	// Monza simulator bar
	r, g, bl := rgb(350, 400)
	assert.Equal(t, []uint32{0x88, 0x88, 0x88}, []uint32{r, g, bl})

	// Spa has no simulator laps
	r, g, bl = rgb(780, 400)
	assert.Equal(t, []uint32{0xff, 0xff, 0xff}, []uint32{r, g, bl})
}

func TestComparisonPNGEmpty(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, ComparisonPNG(&b, nil))
	_, err := png.Decode(&b)
	assert.NoError(t, err)
}
