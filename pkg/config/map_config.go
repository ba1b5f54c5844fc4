package config

import (
	"strconv"

	"github.com/apex/log"
)

// MapConfig is an in-memory Configer used in tests.
type MapConfig struct {
	configValues map[string]string
}

func NewMapConfig(entries map[string]string) *MapConfig {
	values := make(map[string]string, len(entries))
	for key, entry := range entries {
		values[key] = entry
	}

	return &MapConfig{configValues: values}
}

func (c *MapConfig) Load() error {
	return nil
}

func (c *MapConfig) GetKey(key string) string {
	return c.configValues[key]
}

func (c *MapConfig) MustGetKey(key string) string {
	val := c.GetKey(key)
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func (c *MapConfig) GetKeyWithDefault(key, defaultValue string) string {
	val := c.GetKey(key)
	if val == "" {
		return defaultValue
	}

	return val
}

func (c *MapConfig) GetIntKeyWithDefault(key string, defaultValue int) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		return defaultValue
	}

	return intVal
}

func (c *MapConfig) GetBoolKeyWithDefault(key string, defaultValue bool) bool {
	boolVal, err := strconv.ParseBool(c.GetKey(key))
	if err != nil {
		return defaultValue
	}

	return boolVal
}
