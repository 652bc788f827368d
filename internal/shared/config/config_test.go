package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()

	v := viper.New()
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return &cfg
}

func TestDefaults(t *testing.T) {
	cfg := defaultConfig(t)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, DriverS3, cfg.Storage.Driver)
	assert.Equal(t, "eu-north-1", cfg.Storage.Region)
	assert.Equal(t, CredentialsDefault, cfg.Storage.Credentials)
	assert.Equal(t, 10*time.Minute, cfg.Presign.URLExpiry)
	assert.True(t, cfg.Presign.StrictStatus)
	assert.Equal(t, 120*time.Second, cfg.HTTPClient.ResponseTimeout)
	assert.Equal(t, uint32(5), cfg.Breaker.FailureThreshold)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, defaultConfig(t).Validate())
	})

	t.Run("static credentials need keys", func(t *testing.T) {
		cfg := defaultConfig(t)
		cfg.Storage.Credentials = CredentialsStatic
		assert.ErrorContains(t, cfg.Validate(), "access_key_id")

		cfg.Storage.AccessKeyID = "AKID"
		cfg.Storage.SecretAccessKey = "secret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("profile credentials need a profile", func(t *testing.T) {
		cfg := defaultConfig(t)
		cfg.Storage.Credentials = CredentialsProfile
		assert.ErrorContains(t, cfg.Validate(), "profile")
	})

	t.Run("minio needs an endpoint", func(t *testing.T) {
		cfg := defaultConfig(t)
		cfg.Storage.Driver = DriverMinio
		cfg.Storage.AccessKeyID = "minio"
		cfg.Storage.SecretAccessKey = "minio123"
		assert.ErrorContains(t, cfg.Validate(), "endpoint")
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := defaultConfig(t)
		cfg.Storage.Driver = "ftp"
		assert.ErrorContains(t, cfg.Validate(), "unknown driver")
	})

	t.Run("expiry must be positive", func(t *testing.T) {
		cfg := defaultConfig(t)
		cfg.Presign.URLExpiry = 0
		assert.ErrorContains(t, cfg.Validate(), "url_expiry")
	})
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("OBJGATE_PRESIGN_URL_EXPIRY", "5m")
	t.Setenv("OBJGATE_STORAGE_SECRET_KEY", "from-env")
	t.Setenv("OBJGATE_CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Presign.URLExpiry)
	assert.Equal(t, "from-env", cfg.Storage.SecretAccessKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
}

func TestParseCommaSeparatedList(t *testing.T) {
	assert.Nil(t, parseCommaSeparatedList(""))
	assert.Equal(t, []string{"a", "b"}, parseCommaSeparatedList(" a ,, b "))
}
