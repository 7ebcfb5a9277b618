package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMillisToMinutes(t *testing.T) {
	assert.Equal(t, "01:30.000", MillisToMinutes(90000))
	assert.Equal(t, "01:21.046", MillisToMinutes(81046.4))
	assert.Equal(t, "00:59.999", MillisToMinutes(59999))
	assert.Equal(t, "-", MillisToMinutes(0))
}

func TestMillisToDiff(t *testing.T) {
	assert.Equal(t, "  -1.000s", MillisToDiff(-1000))
	assert.Equal(t, "  +0.250s", MillisToDiff(250))
	assert.Equal(t, "   0.000s", MillisToDiff(0))
	assert.Equal(t, "+120.000s", MillisToDiff(120000))
}

func TestGetDriverCodeName(t *testing.T) {
	assert.Equal(t, "VER", GetDriverCodeName("Max", "Verstappen"))
	assert.Equal(t, "HAM", GetDriverCodeName("Lewis", "Hamilton"))
	assert.Equal(t, "ZHO", GetDriverCodeName("Guanyu", "Zhou"))
	assert.Equal(t, "ZH", GetDriverCodeName("", "Zh"))
	assert.Equal(t, "NEL", GetDriverCodeName("Nelson", ""))
	assert.Equal(t, "", GetDriverCodeName(" ", ""))
	assert.Equal(t, "PÉR", GetDriverCodeName("Sergio", "Pérez"))
	assert.Equal(t, "DEV", GetDriverCodeName("Nyck", "de Vries"))
}

func TestToID(t *testing.T) {
	assert.Equal(t, ToID("Monza"), ToID("Monza"))
	assert.NotEqual(t, ToID("Monza"), ToID("monza"))
}
