package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSimpleCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	err := w.WriteSimpleCSV("monthly.csv",
		[]string{"Period", "Value"},
		[][]string{{"2024-03", "123.40"}, {"2024-04", "98.70"}})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "monthly.csv"))
	require.NoError(t, err)

	// BOM prefix then the records.
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, content[:3])
	assert.Equal(t, "Period,Value\n2024-03,123.40\n2024-04,98.70\n", string(content[3:]))
}

func TestWriteCSVAppend(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	require.NoError(t, w.WriteCSV("rolling.csv", WriteOptions{
		Headers: []string{"Date", "Value"},
		Records: [][]string{{"2024-03-01", "10.00"}},
	}))
	require.NoError(t, w.AppendToCSV("rolling.csv", [][]string{{"2024-03-02", "11.00"}}))

	content, err := os.ReadFile(filepath.Join(dir, "rolling.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Date,Value\n2024-03-01,10.00\n2024-03-02,11.00\n", string(content))
}

func TestWriteCSVCreatesNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	require.NoError(t, w.WriteCSV(filepath.Join("generation", "weekly.csv"), WriteOptions{
		Headers: []string{"Period"},
		Records: [][]string{{"2024-03-04"}},
	}))

	_, err := os.Stat(filepath.Join(dir, "generation", "weekly.csv"))
	assert.NoError(t, err)
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	payload := map[string]interface{}{"metric": "generation", "months": 12}
	require.NoError(t, w.WriteJSON("report.json", payload))

	content, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, "generation", decoded["metric"])
}
