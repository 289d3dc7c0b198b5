package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	Workers int    `json:"workers"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	_, err := ReadConfig[testConfig](name)
	require.ErrorIs(t, err, os.ErrNotExist)

	err = os.WriteFile(name, []byte(`{
		// comments are allowed
		base_url: "https://example.com",
		workers: 4,
	}`), 0o644)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "https://example.com", cfg.BaseUrl)
	require.Equal(t, 4, cfg.Workers)

	err = os.WriteFile(
		filepath.Join(dir, "config.local.json5"),
		[]byte(`{ workers: 16 }`),
		0o644,
	)
	require.NoError(t, err)

	cfg, err = ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "https://example.com", cfg.BaseUrl)
	require.Equal(t, 16, cfg.Workers)
}
