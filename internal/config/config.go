// Package config resolves todo-db configuration from an optional YAML file,
// environment variables, and defaults, into an explicit struct rather than
// ambient process state.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kavia-common/simple-todo-list-286515-286526/internal/store"
)

const (
	DefaultDataDir = "/data"
)

// Config holds the explicit bootstrap configuration.
type Config struct {
	// DataDir is the directory holding the store file.
	DataDir string `mapstructure:"data_dir"`

	// DBFile is the full path to the store file. When empty it is derived
	// from DataDir.
	DBFile string `mapstructure:"db_file"`

	// SchemaFile is an optional schema asset path. Empty selects the
	// embedded default definition.
	SchemaFile string `mapstructure:"schema_file"`

	// Marker overrides the structure probed for readiness. Empty derives
	// it from the schema definition.
	Marker string `mapstructure:"marker"`

	dbFileExplicit bool
}

// DBFileExplicit reports whether DBFile was set by the environment or a
// config file rather than derived from DataDir. Callers overriding DataDir
// must not rederive an explicit DBFile.
func (c *Config) DBFileExplicit() bool {
	return c.dbFileExplicit
}

// Load reads config from the optional YAML file at path, then overlays
// environment variables with the TODODB_ prefix (e.g. TODODB_DATA_DIR).
// The legacy container names DB_FILE and DATA_DIR are honored too.
// envFile, when non-empty, names a dotenv file loaded first.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("db_file", "")
	v.SetDefault("schema_file", "")
	v.SetDefault("marker", "")

	v.SetEnvPrefix("TODODB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("data_dir", "TODODB_DATA_DIR", "DATA_DIR")
	_ = v.BindEnv("db_file", "TODODB_DB_FILE", "DB_FILE")
	_ = v.BindEnv("schema_file", "TODODB_SCHEMA_FILE", "SCHEMA_FILE")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.DBFile == "" {
		cfg.DBFile = store.DBPath(cfg.DataDir)
	} else {
		cfg.dbFileExplicit = true
		if cfg.DataDir == DefaultDataDir {
			// An explicit DB_FILE outside /data implies the data directory too.
			cfg.DataDir = filepath.Dir(cfg.DBFile)
		}
	}

	return &cfg, nil
}
