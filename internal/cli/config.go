package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/treedec/treedec/pkg/errors"
)

// configFileName is the TOML configuration file looked up in the working
// directory and the user's home directory.
const configFileName = ".treedec.toml"

// Config holds the CLI defaults read from the TOML configuration file.
// Flags given on the command line always win over configured values.
type Config struct {
	Iterations          int    `toml:"iterations"`
	NonImprovementLimit int    `toml:"non_improvement_limit"`
	Strategy            string `toml:"strategy"`
	Seed                uint64 `toml:"seed"`
	NoCompression       bool   `toml:"no_compression"`
	InducedEdges        bool   `toml:"induced_edges"`
	CacheDir            string `toml:"cache_dir"`
}

// loadConfig reads the configuration from path, or from the default
// locations when path is empty: ./.treedec.toml, then ~/.treedec.toml.
// A missing default file yields the zero Config; a missing explicit path
// is an error.
func loadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if os.IsNotExist(err) {
				return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s does not exist", path)
			}
			return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config file %s", path)
		}
		return cfg, nil
	}

	for _, candidate := range defaultConfigPaths() {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if _, err := toml.DecodeFile(candidate, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config file %s", candidate)
		}
		return cfg, nil
	}
	return cfg, nil
}

func defaultConfigPaths() []string {
	paths := []string{configFileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, configFileName))
	}
	return paths
}

// cacheDir resolves the cache directory: the configured one, or a
// "treedec" directory below the user cache directory.
func (c Config) cacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return ".treedec-cache"
	}
	return filepath.Join(base, "treedec")
}
