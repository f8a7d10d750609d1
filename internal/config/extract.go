package config

import (
	"github.com/spf13/pflag"
)

// ExtractConfig holds configuration for the offline extract command.
type ExtractConfig struct {
	In       string
	Out      string
	Errors   string
	LogLevel string
}

// LoadExtract merges config file, environment variables, and flags into
// ExtractConfig.
func LoadExtract(cfgFile string, flags *pflag.FlagSet) (ExtractConfig, error) {
	v := newViper()

	v.SetDefault("out", "./data/rows.jsonl")
	v.SetDefault("errors", "./data/extract_errors.jsonl")
	v.SetDefault("log-level", "info")

	if err := bind(v, cfgFile, flags); err != nil {
		return ExtractConfig{}, err
	}

	cfg := ExtractConfig{
		In:       v.GetString("in"),
		Out:      v.GetString("out"),
		Errors:   v.GetString("errors"),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}
