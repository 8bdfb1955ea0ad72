package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/menusolver/pkg/errors"
	"github.com/matzehuels/menusolver/pkg/solver"
)

// Config holds the defaults read from the config file. Flags override it.
type Config struct {
	Policy string `toml:"policy"`
	Format string `toml:"format"`
	Addr   string `toml:"addr"`
}

func defaultConfig() Config {
	return Config{
		Policy: solver.PolicySubmenuWins.String(),
		Format: formatTree,
		Addr:   defaultAddr,
	}
}

// configDir returns the config directory using XDG standard (~/.config/menusolver/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads path, or the default config file when path is empty.
// A missing default file yields the defaults; a missing explicit file is an
// error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return defaultConfig(), nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undec[0].String())
	}
	if _, err := solver.ParsePolicy(cfg.Policy); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}
