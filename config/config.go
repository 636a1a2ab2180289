// Package config loads the optional entrypoint-tool configuration file
// and sets up logging and wait-policy defaults from it.
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/flynn/json5"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/tritondatacenter/entrypoint-tool/config/decode"
	"github.com/tritondatacenter/entrypoint-tool/config/logger"
)

// Default wait policy applied when the config file sets nothing
const (
	DefaultWaitInterval = time.Second
	DefaultWaitTimeout  = 300 * time.Second
)

// Config is the top-level entrypoint-tool configuration
type Config struct {
	Logging *logger.Config
	Wait    *WaitConfig
}

// WaitConfig holds the polling policy for the wait-for-* operations.
// The config file accepts bare integers (seconds) or duration strings
// with units for either field.
type WaitConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// rawConfig mirrors the shape of the config file before decoding
type rawConfig struct {
	Logging *logger.Config         `mapstructure:"logging"`
	Wait    map[string]interface{} `mapstructure:"wait"`
}

// LoadConfig reads the config file at configFlag, falling back to the
// ENTRYPOINT_TOOL environment variable for the path. An empty path is
// not an error and yields the built-in defaults.
func LoadConfig(configFlag string) (*Config, error) {
	if configFlag == "" {
		configFlag = os.Getenv("ENTRYPOINT_TOOL")
	}
	if configFlag == "" {
		return defaultConfig(), nil
	}
	path, err := homedir.Expand(configFlag)
	if err != nil {
		return nil, fmt.Errorf("could not expand config path: %s", err)
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %s", err)
	}
	return newConfig(data)
}

// InitLogging configures the process-wide logger from the config
func (cfg *Config) InitLogging() error {
	return cfg.Logging.Init()
}

func defaultConfig() *Config {
	return &Config{
		Logging: &logger.Config{},
		Wait: &WaitConfig{
			Interval: DefaultWaitInterval,
			Timeout:  DefaultWaitTimeout,
		},
	}
}

func newConfig(data []byte) (*Config, error) {
	var raw rawConfig
	var fields map[string]interface{}
	if err := json5.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("could not parse config file: %s", err)
	}
	if err := decode.ToStruct(fields, &raw); err != nil {
		return nil, fmt.Errorf("config file validation error: %s", err)
	}
	cfg := defaultConfig()
	if raw.Logging != nil {
		cfg.Logging = raw.Logging
	}
	if raw.Wait != nil {
		if rawInterval, ok := raw.Wait["interval"]; ok {
			d, err := ParseDuration(rawInterval)
			if err != nil {
				return nil, fmt.Errorf("could not parse `wait.interval`: %s", err)
			}
			if d <= 0 {
				return nil, fmt.Errorf("`wait.interval` must be positive")
			}
			cfg.Wait.Interval = d
		}
		if rawTimeout, ok := raw.Wait["timeout"]; ok {
			d, err := ParseDuration(rawTimeout)
			if err != nil {
				return nil, fmt.Errorf("could not parse `wait.timeout`: %s", err)
			}
			if d <= 0 {
				return nil, fmt.Errorf("`wait.timeout` must be positive")
			}
			cfg.Wait.Timeout = d
		}
		for key := range raw.Wait {
			if key != "interval" && key != "timeout" {
				return nil, fmt.Errorf("unknown `wait` field '%s'", key)
			}
		}
	}
	return cfg, nil
}
