package config

// Configer is the interface for configuration sources. The default source is
// a dotenv file layered over the process environment.
type Configer interface {
	Load() error
	GetKey(key string) string
	MustGetKey(key string) string
	GetKeyWithDefault(key, defaultValue string) string
	GetIntKeyWithDefault(key string, defaultValue int) int
	GetBoolKeyWithDefault(key string, defaultValue bool) bool
}
