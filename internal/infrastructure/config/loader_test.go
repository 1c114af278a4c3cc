package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestProcessEnvOverridesKeepsRetryDefaultsWhenUnset(t *testing.T) {
	t.Setenv("AL_DB_RETRY_ATTEMPTS", "")
	t.Setenv("AL_DB_RETRY_DELAY_SECONDS", "")
	t.Setenv("AL_LEDGER_MAX_RETRIES", "")

	v := viper.New()
	setDefaults(v)
	processEnvOverrides(v)

	// A connection retry budget of zero would skip the dial loop entirely,
	// so the defaults must survive an absent override
	assert.Equal(t, 3, v.GetInt("database.retryAttempts"))
	assert.Equal(t, 1, v.GetInt("database.retryDelay"))
	assert.Equal(t, 3, v.GetInt("ledger.maxRetries"))
}

func TestProcessEnvOverridesKeepsFileValuesWhenUnset(t *testing.T) {
	t.Setenv("AL_DB_RETRY_ATTEMPTS", "")

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	err := v.ReadConfig(strings.NewReader("database:\n  retryAttempts: 7\n"))
	assert.NoError(t, err)

	processEnvOverrides(v)

	assert.Equal(t, 7, v.GetInt("database.retryAttempts"))
}

func TestProcessEnvOverridesAppliesRetrySettings(t *testing.T) {
	t.Setenv("AL_DB_RETRY_ATTEMPTS", "5")
	t.Setenv("AL_DB_RETRY_DELAY_SECONDS", "2")

	v := viper.New()
	setDefaults(v)
	processEnvOverrides(v)

	assert.Equal(t, 5, v.GetInt("database.retryAttempts"))
	assert.Equal(t, 2, v.GetInt("database.retryDelay"))
}

func TestProcessEnvOverridesIgnoresNonNumericRetrySettings(t *testing.T) {
	t.Setenv("AL_DB_RETRY_ATTEMPTS", "many")

	v := viper.New()
	setDefaults(v)
	processEnvOverrides(v)

	assert.Equal(t, 3, v.GetInt("database.retryAttempts"))
}
