package config

import (
	"os"
	"strings"

	pkgerr "github.com/pkg/errors"
	"github.com/spf13/viper"
)

// New returns a config with environment variables selected by name prefix
func New(prefix string, trimPrefix bool) *viper.Viper {

	v := viper.New()
	prefix = strings.ToUpper(prefix) + "_"

	for _, pair := range os.Environ() {
		if pos := strings.Index(pair, "="); pos != -1 {
			key := pair[:pos]
			if strings.HasPrefix(key, prefix) {
				newKey := key
				if trimPrefix {
					newKey = strings.TrimPrefix(newKey, prefix)
				}
				v.SetDefault(newKey, os.Getenv(key))
			}
		}
	}

	return v
}

// ReadFile merges the config file into the config. An empty name is ignored.
func ReadFile(v *viper.Viper, name string) error {

	if strings.TrimSpace(name) == "" {
		return nil
	}

	if _, err := os.Stat(name); err != nil {
		return pkgerr.Wrap(err, "config file")
	}

	v.SetConfigFile(name)
	if err := v.MergeInConfig(); err != nil {
		return pkgerr.Wrap(err, "failed to parse config")
	}

	return nil
}
