package treeconv

import "fmt"

// ResolutionMode controls how structural problems in a document are handled.
type ResolutionMode string

const (
	// ResolutionBestEffort repairs problems in place (defaulted heading
	// levels, skipped unknown nodes) and records a warning for each.
	ResolutionBestEffort ResolutionMode = "besteffort"
	// ResolutionStrict returns an error on the first structural problem.
	ResolutionStrict ResolutionMode = "strict"
)

// Config holds tree converter configuration options.
type Config struct {
	ResolutionMode ResolutionMode `json:"resolutionMode,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.ResolutionMode == "" {
		c.ResolutionMode = ResolutionBestEffort
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.ResolutionMode != ResolutionBestEffort && c.ResolutionMode != ResolutionStrict {
		return fmt.Errorf("invalid resolutionMode %q", c.ResolutionMode)
	}
	return nil
}
