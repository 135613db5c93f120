package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tailplot/tailplot/internal/ingest"
	"github.com/tailplot/tailplot/internal/model"

	"github.com/spf13/viper"
)

const (
	defaultPollPeriod     = model.DefaultPollPeriod
	defaultFrameInterval  = model.DefaultFrameInterval
	defaultViewSpan       = model.DefaultViewSpan
	defaultWarningBacklog = model.DefaultWarningBacklog
	defaultWarningDisplay = model.DefaultWarningDisplay
	defaultMuxBufferSize  = ingest.DefaultMuxBuffer
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	PollPeriod         time.Duration `mapstructure:"poll-period"`
	FrameInterval      time.Duration `mapstructure:"frame-interval"`
	ViewSpan           time.Duration `mapstructure:"view-span"`
	Backlog            time.Duration `mapstructure:"backlog"`
	WarningBacklog     int           `mapstructure:"warning-backlog"`
	WarningDisplay     time.Duration `mapstructure:"warning-display"`
	MuxBufferSize      int           `mapstructure:"mux-buffer-size"`
	ReverseScrollWheel bool          `mapstructure:"reverse-scroll-wheel"`
	Sources            string        `mapstructure:"sources"` // path to a sources YAML file
	ConfigPath         string        `mapstructure:"-"`       // not from config file
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("TAILPLOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("poll-period", defaultPollPeriod)
	v.SetDefault("frame-interval", defaultFrameInterval)
	v.SetDefault("view-span", defaultViewSpan)
	v.SetDefault("backlog", model.DefaultBacklog)
	v.SetDefault("warning-backlog", defaultWarningBacklog)
	v.SetDefault("warning-display", defaultWarningDisplay)
	v.SetDefault("mux-buffer-size", defaultMuxBufferSize)
	v.SetDefault("reverse-scroll-wheel", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "tailplot", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.FrameInterval <= 0 {
		return cfg, fmt.Errorf("invalid frame-interval: %v", cfg.FrameInterval)
	}
	if cfg.ViewSpan <= 0 {
		return cfg, fmt.Errorf("invalid view-span: %v", cfg.ViewSpan)
	}
	if cfg.Backlog < 0 {
		return cfg, fmt.Errorf("invalid backlog: %v", cfg.Backlog)
	}

	// Expand ~ in the sources path
	if strings.HasPrefix(cfg.Sources, "~/") {
		cfg.Sources = filepath.Join(home, cfg.Sources[2:])
	}

	return cfg, nil
}
