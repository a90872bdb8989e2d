package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdac/lambdac/internal/calculi"
)

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, calculi.Arith, cfg.ResolvedLevel())
	assert.Equal(t, calculi.ModeEval, cfg.ResolvedMode())
	assert.True(t, cfg.ColorEnabled())
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	contents := "level: systemf\nmode: check\ncolor: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(contents), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, calculi.SystemF, cfg.ResolvedLevel())
	assert.Equal(t, calculi.ModeType, cfg.ResolvedMode())
	assert.False(t, cfg.ColorEnabled())
}

func TestLoad_UnknownLevelFallsBackToArith(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("level: notareallevel\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, calculi.Arith, cfg.ResolvedLevel())
}
