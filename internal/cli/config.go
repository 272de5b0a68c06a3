package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/notifykit/templatecache"
	"github.com/notifykit/templatecache/errors"
)

// DefaultConfigFile is the config file consulted when --config is not given.
const DefaultConfigFile = "templatecache.toml"

// fileConfig mirrors templatecache.Config for TOML decoding.
type fileConfig struct {
	Repository    string `toml:"repository"`
	Token         string `toml:"token"`
	APIBaseURL    string `toml:"api_base_url"`
	BasePath      string `toml:"base_path"`
	DefaultBranch string `toml:"default_branch"`
	CacheCapacity int    `toml:"cache_capacity"`
	Provider      string `toml:"provider"`
}

// loadConfig assembles the effective configuration. Precedence, lowest to
// highest: config file, TEMPLATECACHE_* environment, command-line flags.
// A missing default config file is not an error; an explicitly named one
// must exist.
func loadConfig(path string, explicit bool, flags *rootFlags) (templatecache.Config, string, error) {
	var file fileConfig

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &file); err != nil {
			return templatecache.Config{}, "", errors.Wrapf(err, errors.CodeInvalidConfig,
				"parsing config file %s", path)
		}
	case os.IsNotExist(err) && !explicit:
		// Fall through to environment and flags.
	default:
		return templatecache.Config{}, "", errors.Wrapf(err, errors.CodeInvalidConfig,
			"reading config file %s", path)
	}

	cfg, err := templatecache.FromEnv()
	if err != nil {
		return templatecache.Config{}, "", err
	}

	// File values fill whatever the environment left empty.
	if cfg.Repository == "" {
		cfg.Repository = file.Repository
	}
	if cfg.Token == "" {
		cfg.Token = file.Token
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = file.APIBaseURL
	}
	if cfg.TemplateBasePath == "" {
		cfg.TemplateBasePath = file.BasePath
	}
	if cfg.DefaultBranch == "" {
		cfg.DefaultBranch = file.DefaultBranch
	}
	if cfg.CacheCapacity == 0 {
		cfg.CacheCapacity = file.CacheCapacity
	}

	// Flags win over both.
	if flags.repository != "" {
		cfg.Repository = flags.repository
	}
	if flags.token != "" {
		cfg.Token = flags.token
	}
	if flags.basePath != "" {
		cfg.TemplateBasePath = flags.basePath
	}
	if flags.branch != "" {
		cfg.DefaultBranch = flags.branch
	}

	providerName := file.Provider
	if flags.provider != "" {
		providerName = flags.provider
	}
	if providerName == "" {
		providerName = "rest"
	}

	return cfg, providerName, nil
}
