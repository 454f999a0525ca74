package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnv_MissingVersionIsAccepted(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "")

	assert.NoError(t, ValidateEnv())
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("DB_PASSWORD", ExampleDBPassword)
	t.Setenv("API_KEY", ExampleAPIKey)
	t.Setenv("ENVIRONMENT", "development")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err, "Should not error even with warnings")
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "API_KEY")
}

func TestValidateEnvWithWarnings_UnauthenticatedProduction(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("API_KEY", "")
	t.Setenv("ENVIRONMENT", "production")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "unauthenticated")
}
