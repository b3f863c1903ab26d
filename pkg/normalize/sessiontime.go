package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseSessionTime converts one raw time cell into a duration since race
// start. Accepted forms, tried in order:
//   - plain seconds: "15", "15.25"
//   - clock style: "MM:SS", "MM:SS.fff", "HH:MM:SS", "HH:MM:SS.fff",
//     optionally prefixed "N days " (pandas timedelta string form)
//   - Go duration: "1m2.5s"
//
// Anything else is a per-row error; callers drop the row with a warning.
func ParseSessionTime(raw string) (time.Duration, error) {
	val := strings.TrimSpace(raw)
	if val == "" {
		return 0, fmt.Errorf("empty session time")
	}
	if secs, err := strconv.ParseFloat(val, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	if d, ok := parseClock(val); ok {
		return d, nil
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d, nil
	}
	return 0, fmt.Errorf("unparsable session time %q", raw)
}

//nolint:gocognit // straightforward field walk
func parseClock(val string) (time.Duration, bool) {
	var days float64
	if idx := strings.Index(val, "days"); idx > 0 {
		d, err := strconv.ParseFloat(strings.TrimSpace(val[:idx]), 64)
		if err != nil {
			return 0, false
		}
		days = d
		val = strings.TrimSpace(val[idx+len("days"):])
	} else if idx := strings.Index(val, "day"); idx > 0 {
		d, err := strconv.ParseFloat(strings.TrimSpace(val[:idx]), 64)
		if err != nil {
			return 0, false
		}
		days = d
		val = strings.TrimSpace(val[idx+len("day"):])
	}
	parts := strings.Split(val, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	total := days * 24 * 3600
	factor := 1.0
	for i := len(parts) - 1; i >= 0; i-- {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return 0, false
		}
		total += v * factor
		factor *= 60
	}
	return time.Duration(total * float64(time.Second)), true
}
