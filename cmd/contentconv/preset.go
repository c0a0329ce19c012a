package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/parentpost/contentconv"
	"github.com/parentpost/contentconv/mdconv"
	"github.com/parentpost/contentconv/treeconv"
)

const (
	presetBalanced = "balanced"
	presetStrict   = "strict"
	presetClean    = "clean"
	presetPretty   = "pretty"
)

// presetConfig maps a preset name to a facade config.
func presetConfig(preset string) (contentconv.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetBalanced:
		return contentconv.Config{}, nil
	case presetStrict:
		return contentconv.Config{
			Tree: treeconv.Config{ResolutionMode: treeconv.ResolutionStrict},
		}, nil
	case presetClean:
		return contentconv.Config{
			Markdown: mdconv.Config{Sanitize: mdconv.SanitizeUGC},
		}, nil
	case presetPretty:
		return contentconv.Config{
			Markdown: mdconv.Config{HighlightStyle: "github"},
		}, nil
	default:
		return contentconv.Config{}, fmt.Errorf(
			"unknown preset %q (allowed: balanced, strict, clean, pretty)", preset)
	}
}

// fileConfig is the YAML shape of a --config file. Fields left empty keep
// the preset's value.
type fileConfig struct {
	Sanitize       string `yaml:"sanitize"`
	HighlightStyle string `yaml:"highlightStyle"`
	ResolutionMode string `yaml:"resolutionMode"`
	MinFidelity    int    `yaml:"minFidelity"`
}

func (f fileConfig) apply(cfg contentconv.Config) contentconv.Config {
	if f.Sanitize != "" {
		cfg.Markdown.Sanitize = mdconv.SanitizeMode(f.Sanitize)
	}
	if f.HighlightStyle != "" {
		cfg.Markdown.HighlightStyle = f.HighlightStyle
	}
	if f.ResolutionMode != "" {
		cfg.Tree.ResolutionMode = treeconv.ResolutionMode(f.ResolutionMode)
	}
	if f.MinFidelity > 0 {
		cfg.MinFidelity = f.MinFidelity
	}
	return cfg
}

func resolveConfig(preset, configPath string) (contentconv.Config, error) {
	cfg, err := presetConfig(preset)
	if err != nil {
		return contentconv.Config{}, err
	}

	if configPath == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return contentconv.Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return contentconv.Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	return fc.apply(cfg), nil
}
