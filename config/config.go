package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/armon/go-metrics"
	"github.com/pressly/stbi"
	"github.com/sirupsen/logrus"
)

type Config struct {
	LogLevel        string `toml:"log_level"`
	LogFormat       string `toml:"log_format"`
	FlipVertically  bool   `toml:"flip_vertically"`
	ForceComponents int    `toml:"force_components"`

	// [statsd]
	StatsD struct {
		Enabled     bool   `toml:"enabled"`
		Address     string `toml:"address"`
		ServiceName string `toml:"service_name"`
	} `toml:"statsd"`
}

var (
	ErrNoConfigFile = errors.New("no configuration file specified")

	DefaultConfig = Config{}
)

func init() {
	cf := Config{
		LogLevel:        "INFO",
		LogFormat:       "text",
		FlipVertically:  false,
		ForceComponents: 0,
	}

	cf.StatsD.Address = "127.0.0.1:8125"
	cf.StatsD.ServiceName = "stbi"

	DefaultConfig = cf
}

func NewConfig() *Config {
	cf := DefaultConfig
	return &cf
}

// NewConfigFromFile decodes confFile over the defaults, falling back to
// confEnv when confFile is empty.
func NewConfigFromFile(confFile string, confEnv string) (*Config, error) {
	var err error

	if confFile == "" {
		confFile = confEnv
	}
	if confFile == "" {
		return nil, ErrNoConfigFile
	}
	if _, err = os.Stat(confFile); os.IsNotExist(err) {
		return nil, ErrNoConfigFile
	}

	cf := NewConfig()

	if _, err = toml.DecodeFile(confFile, cf); err != nil {
		return nil, err
	}
	return cf, nil
}

func (cf *Config) Validate() error {
	if cf.ForceComponents < 0 || cf.ForceComponents > 4 {
		return fmt.Errorf("force_components must be between 0 and 4, got %d", cf.ForceComponents)
	}
	switch strings.ToLower(cf.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", cf.LogFormat)
	}
	return nil
}

// Apply configures logging and the decoder's flip flag on ng.
func (cf *Config) Apply(ng *stbi.Engine) error {
	if err := cf.Validate(); err != nil {
		return err
	}

	// logging
	lvl, err := logrus.ParseLevel(strings.ToLower(cf.LogLevel))
	if err != nil {
		return err
	}
	stbi.Logger.SetLevel(lvl)
	if strings.ToLower(cf.LogFormat) == "json" {
		stbi.Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		stbi.Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// decoder
	ng.SetFlipVerticallyOnLoad(cf.FlipVertically)

	return nil
}

func (cf *Config) SetupStatsD() error {
	if cf.StatsD.Enabled {
		sink, err := metrics.NewStatsdSink(cf.StatsD.Address)
		if err != nil {
			return err
		}

		config := metrics.DefaultConfig(cf.StatsD.ServiceName)
		config.EnableHostname = true
		config.EnableRuntimeMetrics = false
		config.TimerGranularity = time.Millisecond

		if _, err := metrics.NewGlobal(config, sink); err != nil {
			return err
		}
	}
	return nil
}
