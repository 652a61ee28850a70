package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
// Values are read by viper from a config file or environment variables.
type Config struct {
	// ListenAddr is the HTTP listen address, e.g. ":8080".
	ListenAddr string `mapstructure:"LISTEN_ADDR"`

	// PublicBaseURL is the hard-coded production origin used when no
	// forwarded headers and no deployment host are available.
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`

	// DeploymentHost is the platform-provided host (no scheme), used as the
	// second tier of the base-URL fallback chain.
	DeploymentHost string `mapstructure:"DEPLOYMENT_HOST"`

	// StoreURL and StoreAnonKey configure the remote metadata store.
	// When either is empty, lookups are skipped and previews render from
	// inline/default values.
	StoreURL     string        `mapstructure:"STORE_URL"`
	StoreAnonKey string        `mapstructure:"STORE_ANON_KEY"`
	StoreTimeout time.Duration `mapstructure:"STORE_TIMEOUT"`

	// AppScheme is the custom URL scheme registered by the mobile app.
	AppScheme string `mapstructure:"APP_SCHEME"`

	// AutoOpen controls whether resolved pages attempt to open the app
	// automatically shortly after load, or only on an explicit tap.
	AutoOpen bool `mapstructure:"AUTO_OPEN"`

	LogLevel string `mapstructure:"LOG_LEVEL"`

	// App-association identifiers served under /.well-known/.
	AppleAppID     string `mapstructure:"APPLE_APP_ID"`
	AndroidPackage string `mapstructure:"ANDROID_PACKAGE"`
	AndroidSHA256  string `mapstructure:"ANDROID_SHA256_FINGERPRINT"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Defaults double as the env-var bindings for AutomaticEnv.
	viper.SetDefault("LISTEN_ADDR", ":8080")
	viper.SetDefault("PUBLIC_BASE_URL", "https://rivlus.com")
	viper.SetDefault("DEPLOYMENT_HOST", "")
	viper.SetDefault("STORE_URL", "")
	viper.SetDefault("STORE_ANON_KEY", "")
	viper.SetDefault("STORE_TIMEOUT", 3*time.Second)
	viper.SetDefault("APP_SCHEME", "tcr")
	viper.SetDefault("AUTO_OPEN", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APPLE_APP_ID", "DBRWXQU8LV.com.rivlus.projectTcr")
	viper.SetDefault("ANDROID_PACKAGE", "com.rivlus.project_tcr")
	viper.SetDefault("ANDROID_SHA256_FINGERPRINT", "PLACEHOLDER:SHA256:FINGERPRINT")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err = viper.ReadInConfig()
	if err != nil {
		// A missing config file is fine; env vars and defaults still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if config.PublicBaseURL == "" {
		return Config{}, fmt.Errorf("PUBLIC_BASE_URL must not be empty")
	}
	config.PublicBaseURL = strings.TrimRight(config.PublicBaseURL, "/")
	config.StoreURL = strings.TrimRight(config.StoreURL, "/")
	if config.AppScheme == "" {
		return Config{}, fmt.Errorf("APP_SCHEME must not be empty")
	}
	if config.StoreTimeout <= 0 {
		config.StoreTimeout = 3 * time.Second
	}

	return config, nil
}
