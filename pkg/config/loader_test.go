package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/growthlab/pkg/config"
)

type testConfig struct {
	Host string `env:"GROWTHLAB_TEST_HOST" envDefault:"localhost"`
	Port int    `env:"GROWTHLAB_TEST_PORT" envDefault:"8080"`
}

type requiredConfig struct {
	Token string `env:"GROWTHLAB_TEST_REQUIRED_TOKEN,required"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_CachedBetweenCalls(t *testing.T) {
	var first testConfig
	require.NoError(t, config.Load(&first))

	// Changing the environment after the first load must not change the
	// cached value: each config type is parsed exactly once per process.
	t.Setenv("GROWTHLAB_TEST_HOST", "changed.example.com")

	var second testConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first.Host, second.Host)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoad_MissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}
