package export

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/race-replay-go/pkg/model"
)

func sampleTable() *model.FrameTable {
	ft := model.NewFrameTable(
		[]time.Duration{0, 100 * time.Millisecond},
		[]string{"A", "B"})
	ft.SessionID = "test-session"
	*ft.At(0, 0) = model.Frame{Entity: "A", X: 1, Y: 2, Message: "GREEN FLAG"}
	*ft.At(0, 1) = model.Frame{
		Entity: "B", X: math.NaN(), Y: math.NaN(), Message: "GREEN FLAG",
	}
	*ft.At(1, 0) = model.Frame{Entity: "A", X: 3, Y: 4, InPit: true}
	*ft.At(1, 1) = model.Frame{Entity: "B", X: math.NaN(), Y: math.NaN()}
	return ft
}

func TestWriteFrames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrames(&buf, sampleTable()))

	var doc struct {
		Session  string   `json:"session"`
		TicksMs  []int64  `json:"ticksMs"`
		Entities []string `json:"entities"`
		Frames   [][]struct {
			X       *float64 `json:"x"`
			Y       *float64 `json:"y"`
			InPit   bool     `json:"inPit"`
			Message string   `json:"message"`
		} `json:"frames"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "test-session", doc.Session)
	assert.Equal(t, []int64{0, 100}, doc.TicksMs)
	assert.Equal(t, []string{"A", "B"}, doc.Entities)
	require.Len(t, doc.Frames, 2)

	require.NotNil(t, doc.Frames[0][0].X)
	assert.InDelta(t, 1.0, *doc.Frames[0][0].X, 1e-9)
	assert.Equal(t, "GREEN FLAG", doc.Frames[0][0].Message)

	// missing positions serialize as null, never NaN
	assert.Nil(t, doc.Frames[0][1].X)
	assert.Nil(t, doc.Frames[0][1].Y)
	assert.True(t, doc.Frames[1][0].InPit)
}

func TestWriteLeaderboard(t *testing.T) {
	ticks := []model.LeaderboardTick{
		{Tick: 0, Entries: []model.LeaderboardRow{}},
		{
			Tick: 100 * time.Millisecond,
			Entries: []model.LeaderboardRow{
				{Driver: "A", Position: 1},
				{Driver: "B", Position: 2, GapAhead: 0.5, Interval: 0.5},
			},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteLeaderboard(&buf, "test-session", ticks))

	var doc struct {
		Session string `json:"session"`
		Ticks   []struct {
			TickMs  int64 `json:"tickMs"`
			Entries []struct {
				Driver   string `json:"driver"`
				Position int    `json:"position"`
			} `json:"entries"`
		} `json:"ticks"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "test-session", doc.Session)
	require.Len(t, doc.Ticks, 2)
	assert.Empty(t, doc.Ticks[0].Entries)
	// ticks are flattened to milliseconds, same as the frame document
	assert.Equal(t, int64(0), doc.Ticks[0].TickMs)
	assert.Equal(t, int64(100), doc.Ticks[1].TickMs)
	assert.Equal(t, "B", doc.Ticks[1].Entries[1].Driver)
}

func TestFormatTick(t *testing.T) {
	assert.Equal(t, "00:00.000", FormatTick(0))
	assert.Equal(t, "00:12.300", FormatTick(12300*time.Millisecond))
	assert.Equal(t, "01:02.500", FormatTick(62500*time.Millisecond))
	assert.Equal(t, "12:00.000", FormatTick(12*time.Minute))
}
