package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsaac-bioinfo/genostat/internal/extract"
	"github.com/unsaac-bioinfo/genostat/internal/genbank"
)

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")

	type doc struct {
		Name  string    `json:"name"`
		Count int       `json:"count"`
		Pcts  []float64 `json:"pcts"`
	}
	in := doc{Name: "test", Count: 3, Pcts: []float64{1.5, 2.5}}
	require.NoError(t, WriteJSON(path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Indented, newline-terminated.
	assert.True(t, strings.HasSuffix(string(data), "\n"))
	assert.Contains(t, string(data), "  \"name\"")

	var out doc
	require.NoError(t, ReadJSON(path, &out))
	assert.Equal(t, in, out)
}

func TestReadJSONErrors(t *testing.T) {
	var v any
	assert.Error(t, ReadJSON(filepath.Join(t.TempDir(), "missing.json"), &v))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	assert.Error(t, ReadJSON(bad, &v))
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	header := []string{"locus_tag", "length_nt"}
	rows := [][]string{{"b0001", "66"}, {"b0002", "2463"}}

	require.NoError(t, WriteCSV(path, header, rows))

	gotHeader, gotRows, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, header, gotHeader)
	assert.Equal(t, rows, gotRows)

	col, err := Column(gotHeader, gotRows, "length_nt")
	require.NoError(t, err)
	assert.Equal(t, []string{"66", "2463"}, col)

	_, err = Column(gotHeader, gotRows, "nope")
	assert.ErrorContains(t, err, `no column "nope"`)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 50.79, Round2(50.789))
	assert.Equal(t, 50.0, Round2(50.0001))
	assert.Equal(t, "50.79", Ftoa(50.789))
	assert.Equal(t, "0.00", Ftoa(0))
	assert.Equal(t, "7", Itoa(7))
}

func TestCDSRow(t *testing.T) {
	r := extract.CDSRecord{
		LocusTag:  genbank.Known("b0001"),
		Gene:      genbank.Unknown(),
		Product:   genbank.Unknown(),
		ProteinID: genbank.Known("NP_414542.1"),
		Start:     189, End: 255,
		LengthNT: 66, LengthAA: 22,
		Strand: genbank.StrandForward,
	}

	row := CDSRow(r)
	require.Len(t, row, len(CDSHeader))
	assert.Equal(t, "b0001", row[0])
	assert.Equal(t, NAValue, row[1])
	assert.Equal(t, UnknownValue, row[2])
	assert.Equal(t, "189", row[3])
	assert.Equal(t, "66", row[5])
	assert.Equal(t, "+", row[7])
	assert.Equal(t, "NP_414542.1", row[8])
}

func TestCDSRows(t *testing.T) {
	rows := CDSRows([]extract.CDSRecord{{}, {}})
	assert.Len(t, rows, 2)
	assert.Empty(t, CDSRows(nil))
}
