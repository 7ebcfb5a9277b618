package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeaderboardCallback(t *testing.T) {
	cases := []struct {
		data string
		want leaderboardCallback
		ok   bool
	}{
		{"lb:s:2021", leaderboardCallback{step: stepSeason, season: 2021}, true},
		{"lb:r:2021:3", leaderboardCallback{step: stepRound, season: 2021, round: 3}, true},
		{"lb:c:2021:3:99", leaderboardCallback{step: stepCircuit, season: 2021, round: 3, circuitID: "99"}, true},
		{"lb:s", leaderboardCallback{}, false},
		{"lb:s:2021:1", leaderboardCallback{}, false},
		{"lb:x:2021", leaderboardCallback{}, false},
		{"lb:r:abc:1", leaderboardCallback{}, false},
		{"pager:1", leaderboardCallback{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.data, func(t *testing.T) {
			got, err := parseLeaderboardCallback(tc.data)
			if !tc.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.data, got.String())
		})
	}
}

func TestSeasonsKeyboardGrid(t *testing.T) {
	k := seasonsKeyboard([]int{2024, 2023, 2022, 2021, 2020})
	require.Len(t, k.InlineKeyboard, 2)
	assert.Len(t, k.InlineKeyboard[0], buttonsPerRow)
	assert.Len(t, k.InlineKeyboard[1], 1)
	assert.Equal(t, "2020", k.InlineKeyboard[1][0].Text)
}

func TestCircuitsKeyboardFitsCallbackLimit(t *testing.T) {
	long := "Autodromo Internazionale Enzo e Dino Ferrari Imola"
	k := circuitsKeyboard(2021, 22, []string{long})
	data := *k.InlineKeyboard[0][0].CallbackData
	assert.LessOrEqual(t, len(data), 64)

	cb, err := parseLeaderboardCallback(data)
	require.NoError(t, err)
	name, ok := circuitByID([]string{"Monza", long}, cb.circuitID)
	assert.True(t, ok)
	assert.Equal(t, long, name)
}

func TestCodeBlockEscapes(t *testing.T) {
	assert.Equal(t, "```\na\\`b\n\nc\\\\d```", codeBlock("a`b", "c\\d"))
}
