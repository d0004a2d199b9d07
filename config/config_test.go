package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMissingFileUsesDefaults(t *testing.T) {
	err := Setup("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, Default, Current)
}

func TestSetupEmptyPathUsesDefaults(t *testing.T) {
	err := Setup("")
	require.NoError(t, err)
	assert.Equal(t, Default, Current)
}

func TestValidateRejectsZeroHash(t *testing.T) {
	s := Default
	s.Search.HashSizeMB = 0
	require.Error(t, s.Validate())
}

func TestValidateRejectsMultiPVBelowOne(t *testing.T) {
	s := Default
	s.Search.MultiPV = 0
	require.Error(t, s.Validate())
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, Default.Validate())
}

func TestStringIncludesHashAndMultiPV(t *testing.T) {
	s := Default.String()
	assert.Contains(t, s, "hash=64MB")
	assert.Contains(t, s, "multi_pv=1")
}
