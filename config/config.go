package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigEnv optionally points at a yaml config file; otherwise
// leaderboard.yaml is looked up in the current directory. Every setting may
// also be overridden with the environment variables below.
const ConfigEnv = "CSPR_LEADERBOARD_CONFIG"

// Config carries every environment-derived setting, loaded once at startup
// and passed explicitly to each component.
type Config struct {
	// Base URL of the CSPR Cloud API.
	ApiBase string `yaml:"api_base" mapstructure:"api_base"`
	// Secret reference for the API key (e.g. env:CSPR_CLOUD_KEY,
	// file:~/.cspr-cloud-key, vault:https://vault:8200,secret/cspr/key).
	ApiKey Secret `yaml:"api_key" mapstructure:"api_key"`
	// Network label recorded in the report and used for explorer links.
	Network string `yaml:"network" mapstructure:"network"`
	// Input file with one public key per line.
	InputKeysFile string `yaml:"input_keys_file" mapstructure:"input_keys_file"`
	CsvOut        string `yaml:"csv_out" mapstructure:"csv_out"`
	JsonOut       string `yaml:"json_out" mapstructure:"json_out"`
	// Process only the first N keys. 0 means all.
	Limit int `yaml:"limit" mapstructure:"limit"`
	// HTTP timeout in seconds.
	HttpTimeout int `yaml:"http_timeout" mapstructure:"http_timeout"`
	// Spacing between processed keys, in seconds.
	SleepBetween float64 `yaml:"sleep_between" mapstructure:"sleep_between"`
}

func DefaultConfig() Config {
	return Config{
		ApiBase:       "https://api.testnet.cspr.cloud",
		ApiKey:        "env:CSPR_CLOUD_KEY",
		Network:       "testnet",
		InputKeysFile: "public_keys.txt",
		CsvOut:        "leaderboard_total_testnet.csv",
		JsonOut:       "leaderboard_total_testnet.json",
		Limit:         0,
		HttpTimeout:   20,
		SleepBetween:  0.08,
	}
}

var envBindings = map[string]string{
	"api_base":        "CSPR_CLOUD_BASE",
	"network":         "CSPR_NETWORK",
	"input_keys_file": "INPUT_KEYS_FILE",
	"csv_out":         "CSV_OUT",
	"json_out":        "JSON_OUT",
	"limit":           "LIMIT",
	"http_timeout":    "HTTP_TIMEOUT",
	"sleep_between":   "SLEEP_BETWEEN",
}

// Load reads the configuration: defaults, overlaid by the optional yaml
// config file, overlaid by environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	// seed the defaults by serializing and deserializing
	bz, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	if err := v.ReadConfig(bytes.NewReader(bz)); err != nil {
		return nil, err
	}

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if path := os.Getenv(ConfigEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("leaderboard")
		v.AddConfigPath(".")
	}
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("fatal error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Timeout is the HTTP client timeout.
func (cfg *Config) Timeout() time.Duration {
	return time.Duration(cfg.HttpTimeout) * time.Second
}

// Interval is the fixed spacing between processed keys.
func (cfg *Config) Interval() time.Duration {
	return time.Duration(cfg.SleepBetween * float64(time.Second))
}
