package tsplib_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arlenix/tsplk/tsplib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEuc2D = `NAME: square4
TYPE: TSP
DIMENSION: 4
EDGE_WEIGHT_TYPE: EUC_2D
NODE_COORD_SECTION
1 0 0
2 0 10
3 10 10
4 10 0
EOF
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile_Square(t *testing.T) {
	path := writeTemp(t, "square4.tsp", sampleEuc2D)

	inst, err := tsplib.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, inst.N)
	assert.Equal(t, []int64{0, 0, 10, 10}, inst.Ys)
	assert.Equal(t, []int64{0, 10, 10, 0}, inst.Xs)
	assert.Equal(t, "square4", inst.Name)
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := tsplib.ParseFile(filepath.Join(t.TempDir(), "nope.tsp"))
	assert.ErrorIs(t, err, tsplib.ErrIO)
}

func TestParseFile_MissingDimension(t *testing.T) {
	path := writeTemp(t, "bad.tsp", "NAME: bad\nNODE_COORD_SECTION\n1 0 0\nEOF\n")
	_, err := tsplib.ParseFile(path)
	assert.ErrorIs(t, err, tsplib.ErrInputFormat)
}

func TestParseFile_DimensionMismatch(t *testing.T) {
	path := writeTemp(t, "bad.tsp", "DIMENSION: 3\nNODE_COORD_SECTION\n1 0 0\n2 0 1\nEOF\n")
	_, err := tsplib.ParseFile(path)
	assert.ErrorIs(t, err, tsplib.ErrInputFormat)
}

func TestParseFile_MalformedCoordLine(t *testing.T) {
	path := writeTemp(t, "bad.tsp", "DIMENSION: 1\nNODE_COORD_SECTION\n1 abc 0\nEOF\n")
	_, err := tsplib.ParseFile(path)
	assert.ErrorIs(t, err, tsplib.ErrInputFormat)
}
