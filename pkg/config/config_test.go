package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapConfig(t *testing.T) {
	c := NewMapConfig(map[string]string{
		"PMAPID_PORT": "1360",
		"DB_TX_RETRY": "5",
		"VERBOSE":     "true",
	})
	require.NoError(t, c.Load())

	require.Equal(t, "1360", c.GetKey("PMAPID_PORT"))
	require.Equal(t, "", c.GetKey("NO_SUCH_KEY"))
	require.Equal(t, "fallback", c.GetKeyWithDefault("NO_SUCH_KEY", "fallback"))
	require.Equal(t, 5, c.GetIntKeyWithDefault("DB_TX_RETRY", 3))
	require.Equal(t, 3, c.GetIntKeyWithDefault("NO_SUCH_KEY", 3))
	require.True(t, c.GetBoolKeyWithDefault("VERBOSE", false))
	require.False(t, c.GetBoolKeyWithDefault("NO_SUCH_KEY", false))
}

func TestDotenvConfigLoadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MOSAIC_TEST_KEY=from-dotenv\n"), 0o644))

	c := NewDotenvConfig(path)
	require.NoError(t, c.Load())
	defer os.Unsetenv("MOSAIC_TEST_KEY")

	require.Equal(t, "from-dotenv", c.GetKey("MOSAIC_TEST_KEY"))
}

func TestDotenvConfigMissingFileIsNotAnError(t *testing.T) {
	c := NewDotenvConfig("")
	require.NoError(t, c.Load())
}

func TestPackageLevelConfiger(t *testing.T) {
	old := configer
	defer SetConfig(old)

	SetConfig(NewMapConfig(map[string]string{"PMAPID_PORT": "9999"}))
	require.NoError(t, Load())
	require.Equal(t, "9999", GetKeyWithDefault("PMAPID_PORT", "1360"))
}
