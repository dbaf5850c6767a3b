package storage

import (
	"fmt"

	"github.com/cartomark/annotate/internal/config"
	"github.com/cartomark/annotate/internal/logging"
	"github.com/cartomark/annotate/internal/storage/memory"
	"github.com/cartomark/annotate/internal/storage/postgres"
	sqlitestorage "github.com/cartomark/annotate/internal/storage/sqlite"
)

// Config selects and parameterizes a backend.
type Config struct {
	Type   string
	Memory config.MemoryConfig

	// SqlitePath is the on-disk database file for the sqlite backend.
	SqlitePath string
}

// LoadConfig builds a storage Config from the loaded viper settings.
func LoadConfig() Config {
	return Config{
		Type: config.GetString("storage.type"),
		Memory: config.MemoryConfig{
			OutputDir:      config.GetString("storage.outputDir"),
			CompressOutput: config.GetBool("storage.compressOutput"),
		},
		SqlitePath: config.GetString("storage.sqlite.path"),
	}
}

// NewBackend creates a storage backend based on configuration.
func NewBackend(cfg Config, log *logging.SlogManager) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return postgres.New(postgres.Config{FallbackSqlitePath: cfg.SqlitePath}, log), nil
	case "sqlite":
		return sqlitestorage.New(sqlitestorage.Config{Path: cfg.SqlitePath}, log)
	case "memory":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
