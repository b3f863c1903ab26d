package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	csvData := `SessionTime,Driver,X
0.0,Hamilton,12.5
0.1,Verstappen
0.2,Norris,13.0,extra
`
	tbl, err := Read(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, []string{"SessionTime", "Driver", "X"}, tbl.Columns)
	require.Len(t, tbl.Rows, 3)

	// short row: missing cells read as empty
	assert.Equal(t, "", tbl.Cell(1, tbl.Col("X")))
	// long row: extra cells are simply unreachable by name
	assert.Equal(t, "13.0", tbl.Cell(2, tbl.Col("X")))
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.Error(t, err)
}

func TestRead_HeaderOnly(t *testing.T) {
	tbl, err := Read(strings.NewReader("A,B\n"))
	require.NoError(t, err)
	assert.Empty(t, tbl.Rows)
}

func TestTable_Col(t *testing.T) {
	tbl := NewTable([]string{"A", "B"}, nil)
	assert.Equal(t, 0, tbl.Col("A"))
	assert.Equal(t, 1, tbl.Col("B"))
	assert.Equal(t, -1, tbl.Col("C"))
	// lookup is case sensitive
	assert.Equal(t, -1, tbl.Col("a"))
}

func TestTable_Resolve(t *testing.T) {
	tbl := NewTable([]string{"Xpos", "Ypos"}, nil)

	idx, ok := tbl.Resolve("X", "x", "Xpos")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = tbl.Resolve("Longitude", "Lon")
	assert.False(t, ok)
}

func TestTable_CellOutOfRange(t *testing.T) {
	tbl := NewTable([]string{"A"}, [][]string{{"v"}})
	assert.Equal(t, "v", tbl.Cell(0, 0))
	assert.Equal(t, "", tbl.Cell(1, 0))
	assert.Equal(t, "", tbl.Cell(0, -1))
	assert.Equal(t, "", tbl.Cell(-1, 0))
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := ReadFile("does/not/exist.csv")
	assert.Error(t, err)
}
