package handlers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/legends-codex/internal/infrastructure/config"
)

func TestInitHandler_Handle_Success(t *testing.T) {
	tmpDir := t.TempDir()

	result, err := NewInitHandler().Handle(tmpDir, "")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, result.ConfigPath, "config.yaml")
	assert.Equal(t, "The Mountainous Prairie", result.World)
	assert.Equal(t, "codex_the_mountainous_prairie", result.CollectionName)
	assert.Equal(t, filepath.Join(tmpDir, ".codex", "worlds", "the_mountainous_prairie", "codex.db"), result.ArchivePath)

	assert.True(t, config.Exists(tmpDir))
}

func TestInitHandler_Handle_World(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("OPENAI_API_KEY", "")

	result, err := NewInitHandler().Handle(tmpDir, "Oilfurnace")
	require.NoError(t, err)
	assert.Equal(t, "codex_oilfurnace", result.CollectionName)

	cfg, err := config.Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "Oilfurnace", cfg.World.Name)
	assert.Equal(t, "phi3", cfg.LLM.Model)
}

func TestInitHandler_Handle_AlreadyInitialized(t *testing.T) {
	tmpDir := t.TempDir()

	err := config.WriteDefault(tmpDir)
	require.NoError(t, err)

	_, err = NewInitHandler().Handle(tmpDir, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}
