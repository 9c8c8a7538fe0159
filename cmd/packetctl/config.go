package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/packetctl/internal/logging"
	"github.com/danmuck/packetctl/internal/packet"
	"github.com/rs/zerolog"
)

type fileConfig struct {
	Input          string `toml:"input"`
	LogLevel       string `toml:"log_level"`
	PrintTree      bool   `toml:"print_tree"`
	Reencode       bool   `toml:"reencode"`
	MaxInputDigits int    `toml:"max_input_digits"`
	MaxDepth       int    `toml:"max_depth"`
}

// runConfig is the resolved configuration for one decode run.
type runConfig struct {
	Input       string
	LogLevel    zerolog.Level
	LogLevelSet bool
	PrintTree   bool
	Reencode    bool
	Limits      packet.Limits
}

func defaultRunConfig() runConfig {
	return runConfig{
		Input:    "-",
		LogLevel: zerolog.InfoLevel,
		Limits:   packet.DefaultLimits(),
	}
}

func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load packetctl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return runConfig{}, fmt.Errorf("load packetctl config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("input") {
		if v := strings.TrimSpace(raw.Input); v != "" {
			cfg.Input = v
		}
	}

	if meta.IsDefined("log_level") {
		if err := cfg.setLogLevel(raw.LogLevel); err != nil {
			return runConfig{}, err
		}
	}

	if meta.IsDefined("print_tree") {
		cfg.PrintTree = raw.PrintTree
	}

	if meta.IsDefined("reencode") {
		cfg.Reencode = raw.Reencode
	}

	if meta.IsDefined("max_input_digits") {
		if raw.MaxInputDigits < 0 {
			return runConfig{}, fmt.Errorf("parse max_input_digits: negative value %d", raw.MaxInputDigits)
		}
		cfg.Limits.MaxInputDigits = raw.MaxInputDigits
	}

	if meta.IsDefined("max_depth") {
		if raw.MaxDepth < 0 {
			return runConfig{}, fmt.Errorf("parse max_depth: negative value %d", raw.MaxDepth)
		}
		cfg.Limits.MaxDepth = raw.MaxDepth
	}

	return cfg, nil
}

func (c *runConfig) setLogLevel(raw string) error {
	lvl, ok := logging.ParseLevel(raw)
	if !ok {
		return fmt.Errorf("parse log_level: unknown level %q", raw)
	}
	c.LogLevel = lvl
	c.LogLevelSet = true
	return nil
}
