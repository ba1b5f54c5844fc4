package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/apex/log"
	"github.com/mitchellh/go-homedir"
	"github.com/subosito/gotenv"
)

// DotenvConfig reads keys from the environment, optionally seeded from a
// dotenv file. When no path is given it looks for ~/.mosaic/.env and then
// ./.env; a missing file is not an error.
type DotenvConfig struct {
	DotenvPath string
}

func NewDotenvConfig(path string) *DotenvConfig {
	return &DotenvConfig{DotenvPath: path}
}

func (c *DotenvConfig) Load() error {
	if c.DotenvPath != "" {
		return gotenv.Load(c.DotenvPath)
	}

	if home, err := homedir.Dir(); err == nil {
		path := filepath.Join(home, ".mosaic", ".env")
		if _, err := os.Stat(path); err == nil {
			return gotenv.Load(path)
		}
	}

	if _, err := os.Stat(".env"); err == nil {
		return gotenv.Load(".env")
	}

	return nil
}

func (c *DotenvConfig) GetKey(key string) string {
	return os.Getenv(key)
}

func (c *DotenvConfig) MustGetKey(key string) string {
	val := c.GetKey(key)
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func (c *DotenvConfig) GetKeyWithDefault(key, defaultValue string) string {
	val := c.GetKey(key)
	if val == "" {
		return defaultValue
	}

	return val
}

func (c *DotenvConfig) GetIntKeyWithDefault(key string, defaultValue int) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		return defaultValue
	}

	return intVal
}

func (c *DotenvConfig) GetBoolKeyWithDefault(key string, defaultValue bool) bool {
	boolVal, err := strconv.ParseBool(c.GetKey(key))
	if err != nil {
		return defaultValue
	}

	return boolVal
}
