package fileio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	csv := "seller_item_name,price\nفلاجيل 500,15.5\nبانادول,30\n\n"
	rows, err := ReadSheetMaps(strings.NewReader(csv), "catalog.csv", "", 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "فلاجيل 500", rows[0]["seller_item_name"])
	assert.Equal(t, "30", rows[1]["price"])
}

func TestReadUnsupportedExtension(t *testing.T) {
	_, err := ReadSheetMaps(strings.NewReader("x"), "catalog.pdf", "", 1)
	assert.Error(t, err)
}

func TestWriteAndReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	headers := []string{"seller_item_name", "predicted_name", "similarity_score", "confidence", "sku"}
	rows := [][]any{
		{"فلاجيل 500 مجم اقراص", "فلاجيل 500 مجم 20 قرص", 0.72, "Medium", "SKU-001"},
		{"xyz", "Not Found", 0.0, "Unknown", "Not Found"},
	}
	require.NoError(t, WriteXLSX(path, "Matched", headers, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := ReadSheetMaps(f, path, "Matched", 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "فلاجيل 500 مجم 20 قرص", got[0]["predicted_name"])
	assert.Equal(t, "Not Found", got[1]["sku"])
}

func TestReadXLSXMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, "Matched", []string{"a"}, [][]any{{"1"}}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = ReadSheetMaps(f, path, "Dataset", 1)
	assert.Error(t, err)
}

func TestPickHeaderFillsBlanks(t *testing.T) {
	rows := [][]string{{"name", "", "sku"}}
	h := pickHeader(rows, 1)
	assert.Equal(t, []string{"name", "Column 2", "sku"}, h)
}
