package bot

import (
	"fmt"
	"strconv"
	"strings"

	"f1acleaderboard/pkg/helper"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

const (
	callbackPrefix = "lb"

	stepSeason  = "s"
	stepRound   = "r"
	stepCircuit = "c"

	buttonsPerRow = 4
)

// leaderboardCallback is the payload of a leaderboard keyboard button:
// "lb:s:<season>", "lb:r:<season>:<round>" or
// "lb:c:<season>:<round>:<circuit id>".
type leaderboardCallback struct {
	step      string
	season    int
	round     int
	circuitID string
}

func (c leaderboardCallback) String() string {
	switch c.step {
	case stepSeason:
		return fmt.Sprintf("%s:%s:%d", callbackPrefix, c.step, c.season)
	case stepRound:
		return fmt.Sprintf("%s:%s:%d:%d", callbackPrefix, c.step, c.season, c.round)
	default:
		return fmt.Sprintf("%s:%s:%d:%d:%s", callbackPrefix, c.step, c.season, c.round, c.circuitID)
	}
}

func isLeaderboardCallback(data string) bool {
	return strings.HasPrefix(data, callbackPrefix+":")
}

func parseLeaderboardCallback(data string) (leaderboardCallback, error) {
	split := strings.Split(data, ":")
	if len(split) < 3 || split[0] != callbackPrefix {
		return leaderboardCallback{}, errors.Errorf("unexpected callback %q", data)
	}

	want := map[string]int{stepSeason: 3, stepRound: 4, stepCircuit: 5}
	n, ok := want[split[1]]
	if !ok || len(split) != n {
		return leaderboardCallback{}, errors.Errorf("unexpected callback %q", data)
	}

	c := leaderboardCallback{step: split[1]}
	var err error
	if c.season, err = strconv.Atoi(split[2]); err != nil {
		return c, errors.Wrapf(err, "callback %q", data)
	}
	if n > 3 {
		if c.round, err = strconv.Atoi(split[3]); err != nil {
			return c, errors.Wrapf(err, "callback %q", data)
		}
	}
	if n > 4 {
		c.circuitID = split[4]
	}
	return c, nil
}

func seasonsKeyboard(seasons []int) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(seasons))
	for _, s := range seasons {
		data := leaderboardCallback{step: stepSeason, season: s}.String()
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(s), data))
	}
	return grid(buttons, buttonsPerRow)
}

func roundsKeyboard(season int, rounds []int) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(rounds))
	for _, r := range rounds {
		data := leaderboardCallback{step: stepRound, season: season, round: r}.String()
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(r), data))
	}
	return grid(buttons, buttonsPerRow)
}

// circuitsKeyboard puts one circuit per row. Names travel as hashed ids to
// stay within the callback size limit.
func circuitsKeyboard(season, round int, circuits []string) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(circuits))
	for _, c := range circuits {
		data := leaderboardCallback{step: stepCircuit, season: season, round: round, circuitID: helper.ToID(c)}.String()
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(c, data))
	}
	return grid(buttons, 1)
}

func grid(buttons []tgbotapi.InlineKeyboardButton, perRow int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(buttons); i += perRow {
		end := min(i+perRow, len(buttons))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons[i:end]...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func circuitByID(circuits []string, id string) (string, bool) {
	for _, c := range circuits {
		if helper.ToID(c) == id {
			return c, true
		}
	}
	return "", false
}
