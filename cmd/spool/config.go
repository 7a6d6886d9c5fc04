package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// loadConfig fills v from defaults, an optional YAML config file and
// SPOOL_ prefixed environment variables. Flags bound to v take precedence.
func loadConfig(v *viper.Viper, cfgFile string) error {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".spool"))
		}
		v.SetConfigType("yaml")
		v.SetConfigName("spool")
	}

	v.SetEnvPrefix("SPOOL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("max_size", 1<<20)
	v.SetDefault("temp_dir", "")
	v.SetDefault("allow_tmpfs", false)
	v.SetDefault("out", "")
	v.SetDefault("verbose", false)
}
