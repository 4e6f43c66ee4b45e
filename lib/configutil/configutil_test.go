package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Url      string `json:"url"`
	RowStart int    `json:"row_start"`
	RowEnd   int    `json:"row_end"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "source.json5")

	err := os.WriteFile(path, []byte(`{
		// comments are allowed
		url: "https://example.com/data",
		row_start: 8,
		row_end: 229,
	}`), 0600)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := ReadConfig[testConfig](path)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "https://example.com/data", cfg.Url)
	require.Equal(t, 8, cfg.RowStart)
	require.Equal(t, 229, cfg.RowEnd)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "source.json5"), []byte(`{
		url: "https://example.com/data",
		row_start: 8,
	}`), 0600)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(dir, "source.local.json5"), []byte(`{
		url: "http://localhost:9999/fixture",
	}`), 0600)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "source.json5"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "http://localhost:9999/fixture", cfg.Url)
	require.Equal(t, 8, cfg.RowStart)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
