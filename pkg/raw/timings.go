package raw

import (
	"strings"
	"time"
)

// markers within race control messages (case-insensitive substring match)
const (
	startMarker = "GREEN"
	endMarker   = "END"
)

// Timings holds the derived race bounds. Determined is false when the
// event stream carries no usable rows; that is a valid outcome which
// degrades all downstream products to empty, it is not an error.
type Timings struct {
	Duration   time.Duration
	Start      time.Duration
	End        time.Duration
	Determined bool
}

// RaceTimings derives (duration, start, end) from the event stream.
// Start is the earliest event whose message contains the race start
// marker, else the earliest event; end is the latest event containing the
// end marker, else the latest event.
func (s *Store) RaceTimings() Timings {
	if len(s.events) == 0 {
		return Timings{}
	}
	minTime := s.events[0].SessionTime
	maxTime := s.events[0].SessionTime
	var start, end time.Duration
	haveStart, haveEnd := false, false
	for i := range s.events {
		ev := &s.events[i]
		if ev.SessionTime < minTime {
			minTime = ev.SessionTime
		}
		if ev.SessionTime > maxTime {
			maxTime = ev.SessionTime
		}
		msg := strings.ToUpper(ev.Message)
		if strings.Contains(msg, startMarker) {
			if !haveStart || ev.SessionTime < start {
				start = ev.SessionTime
				haveStart = true
			}
		}
		if strings.Contains(msg, endMarker) {
			if !haveEnd || ev.SessionTime > end {
				end = ev.SessionTime
				haveEnd = true
			}
		}
	}
	if !haveStart {
		start = minTime
	}
	if !haveEnd {
		end = maxTime
	}
	return Timings{
		Duration:   maxTime - minTime,
		Start:      start,
		End:        end,
		Determined: true,
	}
}
