package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/spacemeshos/resource-proof/config"
)

// bindConfigFlags registers a flag for every config.Config field. Flag names match the
// mapstructure tags, so a changed flag takes precedence over the config file.
func bindConfigFlags(flags *pflag.FlagSet) {
	def := config.DefaultConfig()

	flags.Uint64P("size", "s", def.MinSize, "size of the proof data, in bytes")
	flags.Uint8P("difficulty", "d", def.Difficulty, "number of leading zero bits required in the SHA3 hash of the proof")
	flags.Uint64("max-steps", def.MaxSteps, "give up proving after this many steps (0 - unlimited)")
	flags.Uint64("progress-interval", def.ProgressInterval, "number of steps between progress logs (0 - disabled)")
}

// loadConfig merges defaults, the config file, RESPROOF_* environment variables and changed
// flags, in increasing priority.
// A missing config file is only an error if its path was given explicitly.
func loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	vip := viper.New()
	vip.SetEnvPrefix("RESPROOF")
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	def := config.DefaultConfig()
	vip.SetDefault("size", def.MinSize)
	vip.SetDefault("difficulty", def.Difficulty)
	vip.SetDefault("max-steps", def.MaxSteps)
	vip.SetDefault("progress-interval", def.ProgressInterval)

	fileLocation, _ := flags.GetString("config")
	if fileLocation == "" {
		fileLocation = config.DefaultConfigFile()
	}
	if err := loadConfigFile(smutil.GetCanonicalPath(fileLocation), vip); err != nil {
		if flags.Changed("config") || !errors.Is(err, fs.ErrNotExist) {
			return config.Config{}, err
		}
	}

	for _, name := range []string{"size", "difficulty", "max-steps", "progress-interval"} {
		if f := flags.Lookup(name); f != nil {
			if err := vip.BindPFlag(name, f); err != nil {
				return config.Config{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg config.Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func loadConfigFile(fileLocation string, vip *viper.Viper) error {
	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", fileLocation, err)
	}
	return nil
}
