// Package export serializes the stitched products for downstream playback
// layers. The NaN missing marker is mapped to JSON null.
package export

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ohler55/ojg/oj"

	"github.com/mpapenbr/race-replay-go/pkg/model"
)

type frameOut struct {
	X       *float64 `json:"x"`
	Y       *float64 `json:"y"`
	InPit   bool     `json:"inPit"`
	Message string   `json:"message"`
}

type framesDoc struct {
	Session  string       `json:"session"`
	TicksMs  []int64      `json:"ticksMs"`
	Entities []string     `json:"entities"`
	Frames   [][]frameOut `json:"frames"`
}

// leaderboardTickOut mirrors model.LeaderboardTick with the tick flattened
// to milliseconds, matching the frame document's tick representation.
type leaderboardTickOut struct {
	TickMs  int64                  `json:"tickMs"`
	Entries []model.LeaderboardRow `json:"entries"`
}

type leaderboardDoc struct {
	Session string               `json:"session"`
	Ticks   []leaderboardTickOut `json:"ticks"`
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// WriteFrames writes the frame table as a single JSON document: the
// ordered tick list (ms), the ordered entity list and one row of cells per
// tick, so a player can index by frame number without recomputation.
func WriteFrames(w io.Writer, ft *model.FrameTable) error {
	doc := framesDoc{
		Session:  ft.SessionID,
		TicksMs:  make([]int64, len(ft.Ticks())),
		Entities: ft.Entities(),
		Frames:   make([][]frameOut, len(ft.Ticks())),
	}
	for i, tick := range ft.Ticks() {
		doc.TicksMs[i] = tick.Milliseconds()
		row := ft.Row(i)
		out := make([]frameOut, len(row))
		for j := range row {
			out[j] = frameOut{
				X:       optional(row[j].X),
				Y:       optional(row[j].Y),
				InPit:   row[j].InPit,
				Message: row[j].Message,
			}
		}
		doc.Frames[i] = out
	}
	return write(w, &doc)
}

// WriteLeaderboard writes the leaderboard-only projection.
func WriteLeaderboard(w io.Writer, session string, ticks []model.LeaderboardTick) error {
	doc := leaderboardDoc{
		Session: session,
		Ticks:   make([]leaderboardTickOut, len(ticks)),
	}
	for i, lt := range ticks {
		doc.Ticks[i] = leaderboardTickOut{
			TickMs:  lt.Tick.Milliseconds(),
			Entries: lt.Entries,
		}
	}
	return write(w, &doc)
}

func write(w io.Writer, doc any) error {
	data, err := oj.Marshal(doc)
	if err != nil {
		return fmt.Errorf("could not marshal document: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("could not write document: %w", err)
	}
	return nil
}

// FormatTick renders a tick the way the original player displays race
// time: MM:SS.mmm.
func FormatTick(d time.Duration) string {
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins)*60
	return fmt.Sprintf("%02d:%06.3f", mins, secs)
}
