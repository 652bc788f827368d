package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverS3    = "s3"
	DriverMinio = "minio"
)

// Credential modes for the S3 driver.
const (
	CredentialsStatic  = "static"
	CredentialsProfile = "profile"
	CredentialsDefault = "default" // SDK default chain, includes instance roles
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Presign    PresignConfig    `mapstructure:"presign"`
	HTTPClient HTTPClientConfig `mapstructure:"http_client"`
	Breaker    BreakerConfig    `mapstructure:"breaker"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadSize   int64         `mapstructure:"max_upload_size"`
}

// StorageConfig holds object storage configuration.
type StorageConfig struct {
	Driver          string `mapstructure:"driver"` // s3 or minio
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	Credentials     string `mapstructure:"credentials"` // static, profile, default
	Profile         string `mapstructure:"profile"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	SessionToken    string `mapstructure:"session_token"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// PresignConfig holds presigned URL configuration.
type PresignConfig struct {
	// URLExpiry is the lifetime of every signed URL.
	URLExpiry time.Duration `mapstructure:"url_expiry"`
	// StrictStatus turns unsuccessful upload/delete responses into errors.
	StrictStatus bool `mapstructure:"strict_status"`
}

// HTTPClientConfig holds HTTP client configuration for presigned transfers.
type HTTPClientConfig struct {
	// Connection pool settings
	MaxIdleConns        int           `mapstructure:"max_idle_conns"`
	MaxIdleConnsPerHost int           `mapstructure:"max_idle_conns_per_host"`
	MaxConnsPerHost     int           `mapstructure:"max_conns_per_host"`
	IdleConnTimeout     time.Duration `mapstructure:"idle_conn_timeout"`

	// Timeout settings
	DialTimeout         time.Duration `mapstructure:"dial_timeout"`
	TLSHandshakeTimeout time.Duration `mapstructure:"tls_handshake_timeout"`
	ResponseTimeout     time.Duration `mapstructure:"response_timeout"`

	// Keep-alive settings
	KeepAlive time.Duration `mapstructure:"keep_alive"`
}

// BreakerConfig holds circuit breaker settings for direct storage calls.
type BreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins []string      `mapstructure:"allow_origins"`
	MaxAge       time.Duration `mapstructure:"max_age"`
}

// MetricsConfig holds prometheus configuration.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from .env, config file and environment.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/objgate")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("OBJGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Sensitive values
	if key := os.Getenv("OBJGATE_STORAGE_ACCESS_KEY"); key != "" {
		cfg.Storage.AccessKeyID = key
	}
	if key := os.Getenv("OBJGATE_STORAGE_SECRET_KEY"); key != "" {
		cfg.Storage.SecretAccessKey = key
	}
	if s := os.Getenv("OBJGATE_CORS_ALLOW_ORIGINS"); s != "" {
		cfg.CORS.AllowOrigins = parseCommaSeparatedList(s)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for values the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case DriverS3:
		switch c.Storage.Credentials {
		case CredentialsStatic:
			if c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "" {
				errs = append(errs, errors.New("storage: static credentials require access_key_id and secret_access_key"))
			}
		case CredentialsProfile:
			if c.Storage.Profile == "" {
				errs = append(errs, errors.New("storage: profile credentials require a profile name"))
			}
		case CredentialsDefault:
		default:
			errs = append(errs, fmt.Errorf("storage: unknown credentials mode %q", c.Storage.Credentials))
		}
	case DriverMinio:
		if c.Storage.Endpoint == "" {
			errs = append(errs, errors.New("storage: minio driver requires an endpoint"))
		}
		if c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "" {
			errs = append(errs, errors.New("storage: minio driver requires access_key_id and secret_access_key"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage: unknown driver %q", c.Storage.Driver))
	}

	if c.Storage.Region == "" {
		errs = append(errs, errors.New("storage: region is required"))
	}
	if c.Presign.URLExpiry <= 0 {
		errs = append(errs, errors.New("presign: url_expiry must be positive"))
	}

	return errors.Join(errs...)
}

func parseCommaSeparatedList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_upload_size", 32<<20)

	// Storage defaults
	v.SetDefault("storage.driver", DriverS3)
	v.SetDefault("storage.region", "eu-north-1")
	v.SetDefault("storage.credentials", CredentialsDefault)
	v.SetDefault("storage.use_path_style", false)
	v.SetDefault("storage.use_ssl", true)

	// Presign defaults
	v.SetDefault("presign.url_expiry", 10*time.Minute)
	v.SetDefault("presign.strict_status", true)

	// HTTP client defaults
	v.SetDefault("http_client.max_idle_conns", 100)
	v.SetDefault("http_client.max_idle_conns_per_host", 20)
	v.SetDefault("http_client.max_conns_per_host", 50)
	v.SetDefault("http_client.idle_conn_timeout", 90*time.Second)
	v.SetDefault("http_client.dial_timeout", 30*time.Second)
	v.SetDefault("http_client.tls_handshake_timeout", 10*time.Second)
	v.SetDefault("http_client.response_timeout", 120*time.Second)
	v.SetDefault("http_client.keep_alive", 30*time.Second)

	// Breaker defaults
	v.SetDefault("breaker.enabled", true)
	v.SetDefault("breaker.failure_threshold", 5)
	v.SetDefault("breaker.max_requests", 1)
	v.SetDefault("breaker.interval", 60*time.Second)
	v.SetDefault("breaker.timeout", 30*time.Second)

	// CORS defaults
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.max_age", 12*time.Hour)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "objgate")
	v.SetDefault("metrics.path", "/metrics")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
