package pages

import (
	"fmt"
	"strconv"
	"strings"
)

// Score is a problem score as shown on the progress page.
type Score struct {
	Earned   int
	Possible int
}

func (s Score) String() string {
	return fmt.Sprintf("%d/%d", s.Earned, s.Possible)
}

// ParseScore parses "earned/possible", e.g. "0/3". Surrounding whitespace is ignored.
func ParseScore(text string) (Score, error) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) != 2 {
		return Score{}, fmt.Errorf("malformed score %q", text)
	}
	earned, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	possible, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || earned < 0 || possible < 0 {
		return Score{}, fmt.Errorf("malformed score %q", text)
	}
	return Score{Earned: earned, Possible: possible}, nil
}

// ParseVideoTime parses the player's "elapsed / duration" caption, where each side is
// "m:ss" or "h:mm:ss", into seconds.
func ParseVideoTime(text string) (elapsed, duration int, err error) {
	parts := strings.Split(text, "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed video time %q", text)
	}
	if elapsed, err = parseClock(parts[0]); err != nil {
		return 0, 0, err
	}
	if duration, err = parseClock(parts[1]); err != nil {
		return 0, 0, err
	}
	return elapsed, duration, nil
}

func parseClock(s string) (int, error) {
	fields := strings.Split(strings.TrimSpace(s), ":")
	if len(fields) < 2 || len(fields) > 3 {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	total := 0
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || (i > 0 && (len(f) != 2 || n > 59)) {
			return 0, fmt.Errorf("malformed time %q", s)
		}
		total = total*60 + n
	}
	return total, nil
}
