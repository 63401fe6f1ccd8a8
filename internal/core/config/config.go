package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// PublicURL is the externally reachable base URL of the storefront.
	PublicURL string `mapstructure:"PUBLIC_URL" default:"http://localhost:8080"`

	// Redis holds the deck storage connection.
	Redis RedisConfig `mapstructure:",squash"`

	// DataStore holds the hosted data store credentials.
	DataStore DataStoreConfig `mapstructure:",squash"`

	// Identity holds the identity provider session settings.
	Identity IdentityConfig `mapstructure:",squash"`

	// Images holds the remote image allow-list.
	Images ImagesConfig `mapstructure:",squash"`

	// Hero holds the hero banner defaults.
	Hero HeroConfig `mapstructure:",squash"`

	// Proxy holds the outbound proxy used by the snapshot browser.
	Proxy ProxyConfig `mapstructure:",squash"`

	// Snapshot holds the headless browser settings for banner snapshots.
	Snapshot SnapshotConfig `mapstructure:",squash"`
}

// RedisConfig holds the Redis connection details.
type RedisConfig struct {
	// URL follows redis://[:password@]host[:port][/database].
	URL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
}

// DataStoreConfig holds the credentials for the hosted data store.
type DataStoreConfig struct {
	// URL is the base URL of the data store project.
	URL string `mapstructure:"DATASTORE_URL" required:"true"`
	// AnonKey is the public API key sent with every request.
	AnonKey string `mapstructure:"DATASTORE_ANON_KEY" required:"true"`
	// TimeoutSeconds bounds every data store request.
	TimeoutSeconds int `mapstructure:"DATASTORE_TIMEOUT_SECONDS" default:"10"`
}

// IdentityConfig describes how identity provider session tokens are verified.
type IdentityConfig struct {
	// SigningKey is the HMAC key session tokens are signed with.
	SigningKey string `mapstructure:"IDENTITY_SIGNING_KEY"`
	// Issuer is the expected "iss" claim. Empty disables the check.
	Issuer string `mapstructure:"IDENTITY_ISSUER"`
	// SessionCookie is the cookie holding the session token.
	SessionCookie string `mapstructure:"IDENTITY_SESSION_COOKIE" default:"__session"`
}

// ImagesConfig holds the remote image hosts the image loader may fetch from.
type ImagesConfig struct {
	// RemoteHosts is a comma separated list of hostnames, optionally prefixed with a scheme
	// (e.g. "img.clerk.com,https://images.unsplash.com").
	RemoteHosts string `mapstructure:"IMAGE_REMOTE_HOSTS" default:"img.clerk.com,https://images.unsplash.com"`
	// CacheMaxAge is the Cache-Control max-age in seconds for proxied images.
	CacheMaxAge int `mapstructure:"IMAGE_CACHE_MAX_AGE" default:"3600"`
}

// HeroConfig holds the hero banner defaults.
type HeroConfig struct {
	// DefaultDeck is the deck rendered on the home page.
	DefaultDeck string `mapstructure:"HERO_DEFAULT_DECK" default:"home"`
	// SeedSample seeds the sample deck when the default deck is missing.
	SeedSample bool `mapstructure:"HERO_SEED_SAMPLE" default:"true"`
	// IntervalMillis is the auto-advance interval used when a deck does not set one.
	IntervalMillis int `mapstructure:"HERO_INTERVAL_MS" default:"5000"`
}

// ProxyConfig holds the outbound proxy settings.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"PROXY_ENABLED" default:"false"`
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	Port     int    `mapstructure:"PROXY_PORT"`
	Username string `mapstructure:"PROXY_USERNAME"`
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// SnapshotConfig holds the headless browser settings for banner snapshots.
type SnapshotConfig struct {
	// TimeoutSeconds bounds one snapshot run, browser start included.
	TimeoutSeconds int `mapstructure:"SNAPSHOT_TIMEOUT_SECONDS" default:"60"`
	// Width and Height are the browser viewport in CSS pixels.
	Width  int `mapstructure:"SNAPSHOT_WIDTH" default:"1920"`
	Height int `mapstructure:"SNAPSHOT_HEIGHT" default:"600"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	return load(path)
}

// LoadOperator loads the configuration for operator tooling. The data store settings are
// optional because operator commands never reach the data store.
func LoadOperator(path string) (*AppConfig, error) {
	return load(path, "DataStore")
}

// load reads the configuration; skip names AppConfig fields whose required tags are ignored.
func load(path string, skip ...string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config, skip...); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values. Fields named in
// skip are not checked.
func validateRequired(config interface{}, skip ...string) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if slices.Contains(skip, field.Name) {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
