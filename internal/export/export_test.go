package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"deckdex/internal/catalog"
	"deckdex/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteCSV_ReferenceBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, catalog.ScanBatch()))

	want := strings.Join([]string{
		"Name,Type,Cost,Rarity,Set",
		"Lightning Bolt,Instant,R,Common,M21",
		"Serra Angel,Creature - Angel,3WW,Uncommon,M21",
		"Counterspell,Instant,UU,Common,TSR",
		"Sol Ring,Artifact,1,Uncommon,CMR",
		"Forest,Basic Land,,Common,M21",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_LineCountIsCardsPlusHeader(t *testing.T) {
	for n := 0; n <= 5; n++ {
		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, catalog.ScanBatch()[:n]))
		assert.Len(t, strings.Split(buf.String(), "\n"), n+1, "cards=%d", n)
	}
}

func TestWriteCSV_DoesNotQuoteCommas(t *testing.T) {
	var buf bytes.Buffer
	cards := []model.ScannedCard{{Name: "Borborygmos, Enraged", Type: "Legendary Creature", Cost: "4RRGG", Rarity: "Rare", Set: "DGM"}}
	require.NoError(t, WriteCSV(&buf, cards))
	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Borborygmos, Enraged,Legendary Creature,4RRGG,Rare,DGM", lines[1])
}

func TestWriteXLSX_RoundTripsRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, catalog.ScanBatch()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Library")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Name", "Type", "Cost", "Rarity", "Set"}, rows[0])
	assert.Equal(t, []string{"Sol Ring", "Artifact", "1", "Uncommon", "CMR"}, rows[4])
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(dir, FormatCSV, catalog.ScanBatch())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mtg_library.csv"), path)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "Name,Type,Cost,Rarity,Set\n"))

	path, err = WriteFile(dir, FormatXLSX, catalog.ScanBatch())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mtg_library.xlsx"), path)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWriteFile_RequiresDir(t *testing.T) {
	for _, dir := range []string{"", "   "} {
		_, err := WriteFile(dir, FormatCSV, catalog.ScanBatch())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing dir")
	}
}
