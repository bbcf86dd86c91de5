package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the resolved global configuration. Precedence, highest first:
// explicitly set flags, environment variables (MVBENCH_DB, MVBENCH_FORMAT,
// MVBENCH_VERBOSE), the config file, then flag defaults.
type Config struct {
	Verbose bool   `mapstructure:"verbose"`
	Format  string `mapstructure:"format"`
	Db      string `mapstructure:"db"`
}

// LoadConfig resolves the global configuration for a command invocation.
// A fresh viper instance is used per call so repeated invocations (and
// tests) never see stale bindings.
func LoadConfig(cmd *cobra.Command, envPrefix string) (*Config, error) {
	v := viper.New()

	v.SetDefault("verbose", false)
	v.SetDefault("format", "text")
	v.SetDefault("db", "")

	// Read config from ENV
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	// Read config from flags
	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return nil, err
	}

	// Read config from file
	if configFile, err := cmd.Flags().GetString("config-file"); err == nil && configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
