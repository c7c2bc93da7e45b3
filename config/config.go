// Ininicializing common application configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "MINERU_EXTRACT"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	MinerU MinerUConfig `mapstructure:"mineru"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	AppVersion     string `mapstructure:"app_version"`
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	Timeout        time.Duration
	Idle_timeout   time.Duration
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	Env            string        `mapstructure:"environment"`
	Mode           string        `mapstructure:"mode"`
}

type MinerUConfig struct {
	// Prefilled into the apiServerUrl property when callers omit it.
	DefaultAPIServerURL string `mapstructure:"default_api_server_url"`
	// Zero leaves the http.Client without a timeout.
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads config.yaml from the given directories (./config when none
// are passed). A missing file is not an error: defaults and environment
// variables still apply.
func LoadConfig(paths ...string) (*viper.Viper, error) {

	viperInstance := viper.New()

	if len(paths) == 0 {
		paths = []string{"./config"}
	}
	for _, p := range paths {
		viperInstance.AddConfigPath(p)
	}
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)

	viperInstance.SetEnvPrefix(envPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	err := viperInstance.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.app_version", "1.0.0")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timeout", 10*time.Minute)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.request_timeout", 10*time.Minute)
	v.SetDefault("server.max_upload_bytes", int64(200<<20))
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.mode", "debug")

	// MinerU defaults
	v.SetDefault("mineru.default_api_server_url", "")
	v.SetDefault("mineru.timeout", time.Duration(0))

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
