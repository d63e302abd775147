package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds CLI defaults loaded from an optional TOML file at
// ~/.config/routecluster/config.toml (or $XDG_CONFIG_HOME/routecluster/).
// Flags always win over config values.
type Config struct {
	// CacheDir overrides the default pipeline cache directory.
	CacheDir string `toml:"cache_dir"`

	// StoreDir overrides the default report store directory.
	StoreDir string `toml:"store_dir"`

	// RedisURL switches the pipeline cache to redis when set.
	RedisURL string `toml:"redis_url"`

	// MongoURL switches the report store to mongo when set.
	MongoURL string `toml:"mongo_url"`

	// Listen is the default address for the serve command.
	Listen string `toml:"listen"`

	// Cluster holds default clustering options.
	Cluster ClusterConfig `toml:"cluster"`
}

// ClusterConfig mirrors the pipeline options that make sense as persistent
// defaults. The values become the flag defaults of the cluster command.
type ClusterConfig struct {
	Reduce            bool `toml:"reduce"`
	UseStrategicBonds bool `toml:"use_strategic_bonds"`
	Subcluster        bool `toml:"subcluster"`
	PostProcess       bool `toml:"post_process"`
	MaxRoutes         int  `toml:"max_routes"`
}

// LoadConfig reads the TOML config at path. An empty path means the default
// location; a missing file yields an empty config and no error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return &Config{}, nil
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &cfg, nil
}

// configPath returns the default config file location using XDG conventions.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
