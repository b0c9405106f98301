package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

// Scénario D : la pondération par défaut (somme 1.0) passe, une somme de 0.99 échoue.
func TestValidate_WeightSum(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))

	cfg.Weights.SizeScore = 0.09 // somme 0.99
	err := Validate(cfg)
	require.Error(t, err)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "scoring_weights", cfgErr.Field)
}

func TestValidate_NegativeSizes(t *testing.T) {
	cfg := Default()
	cfg.MinSegmentSize = -1
	require.Error(t, Validate(cfg))

	cfg = Default()
	cfg.MaxSegmentSize = -1
	require.Error(t, Validate(cfg))
}

func TestValidate_MinAboveMax(t *testing.T) {
	cfg := Default()
	cfg.MinSegmentSize = 30000
	err := Validate(cfg)
	require.Error(t, err)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestValidate_StrategicFitOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.StrategicFit["High_AOV_Premium"] = 1.5
	require.Error(t, Validate(cfg))
}

func TestValidate_UnknownRuleName(t *testing.T) {
	cfg := Default()
	cfg.RuleOrder = []string{"No_Such_Rule"}
	err := Validate(cfg)
	require.Error(t, err)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "rule_order", cfgErr.Field)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MinSegmentSize)
	assert.Equal(t, 20000, cfg.MaxSegmentSize)
	assert.Equal(t, 5000, cfg.OptimalSegmentSize)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	raw := []byte("min_segment_size: 250\nmax_segment_size: 10000\n")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.MinSegmentSize)
	assert.Equal(t, 10000, cfg.MaxSegmentSize)
	// Les champs absents gardent leurs défauts.
	assert.InDelta(t, 1.0, cfg.Weights.Sum(), 1e-9)
}

func TestLoad_InvalidYAMLIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_segment_size: [oops"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
