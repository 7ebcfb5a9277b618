package helper

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

// method to convert from milliseconds to minutes:seconds.milliseconds
func MillisToMinutes(ms float64) string {
	if ms <= 0 {
		return "-"
	}
	total := int64(math.Round(ms))
	minutes := total / 60000
	seconds := (total % 60000) / 1000
	millis := total % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}

// MillisToDiff renders a signed gap in seconds, right aligned to 9 chars.
func MillisToDiff(ms float64) string {
	diff := fmt.Sprintf("%+.3fs", ms/1000)
	if ms == 0 {
		diff = "0.000s"
	}
	chars := len(diff)
	if chars < 9 {
		// add spaces to the left
		diff = strings.Repeat(" ", 9-chars) + diff
	}
	return diff
}

// GetDriverCodeName abbreviates a driver the way timing screens do: the first
// three letters of the surname, or of the forename when there is no surname.
func GetDriverCodeName(forename, surname string) string {
	name := strings.TrimSpace(surname)
	if name == "" {
		name = strings.TrimSpace(forename)
	}
	name = strings.ReplaceAll(name, " ", "")
	runes := []rune(name)
	return strings.ToUpper(string(runes[:min(3, len(runes))]))
}

// convert name to a short numeric id, safe for callback payloads
func ToID(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprint(h.Sum32())
}
