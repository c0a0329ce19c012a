package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parentpost/contentconv/mdconv"
	"github.com/parentpost/contentconv/treeconv"
)

func TestPresetConfig(t *testing.T) {
	t.Run("default is balanced", func(t *testing.T) {
		cfg, err := presetConfig("")
		require.NoError(t, err)
		assert.Equal(t, mdconv.Config{}, cfg.Markdown)
		assert.Equal(t, treeconv.Config{}, cfg.Tree)
	})

	t.Run("strict", func(t *testing.T) {
		cfg, err := presetConfig("strict")
		require.NoError(t, err)
		assert.Equal(t, treeconv.ResolutionStrict, cfg.Tree.ResolutionMode)
	})

	t.Run("clean", func(t *testing.T) {
		cfg, err := presetConfig("clean")
		require.NoError(t, err)
		assert.Equal(t, mdconv.SanitizeUGC, cfg.Markdown.Sanitize)
	})

	t.Run("pretty", func(t *testing.T) {
		cfg, err := presetConfig("PRETTY")
		require.NoError(t, err)
		assert.Equal(t, "github", cfg.Markdown.HighlightStyle)
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := presetConfig("bogus")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown preset")
	})
}

func TestResolveConfigWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"sanitize: ugc\nresolutionMode: strict\nminFidelity: 90\n",
	), 0o644))

	cfg, err := resolveConfig("pretty", path)
	require.NoError(t, err)

	// File values override the preset; untouched preset values survive.
	assert.Equal(t, mdconv.SanitizeUGC, cfg.Markdown.Sanitize)
	assert.Equal(t, treeconv.ResolutionStrict, cfg.Tree.ResolutionMode)
	assert.Equal(t, 90, cfg.MinFidelity)
	assert.Equal(t, "github", cfg.Markdown.HighlightStyle)
}

func TestResolveConfigMissingFile(t *testing.T) {
	_, err := resolveConfig("balanced", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
