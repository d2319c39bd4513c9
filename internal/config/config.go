// Package config loads folio settings from defaults, an optional config file
// and FOLIO_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "FOLIO"

type SMTP struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	To   string `mapstructure:"to"`
}

type Admin struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Config struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	DatabasePath    string        `mapstructure:"databasePath"`
	DataFile        string        `mapstructure:"dataFile"`
	Seed            int64         `mapstructure:"seed"`
	GitHubUser      string        `mapstructure:"githubUser"`
	GitHubToken     string        `mapstructure:"githubToken"`
	TelegramChannel string        `mapstructure:"telegramChannel"`
	PyPIPackage     string        `mapstructure:"pypiPackage"`
	HTTPTimeout     time.Duration `mapstructure:"httpTimeout"`
	LiveTTL         time.Duration `mapstructure:"liveTTL"`
	SMTP            SMTP          `mapstructure:"smtp"`
	Admin           Admin         `mapstructure:"admin"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("mode", "release")
	v.SetDefault("databasePath", "folio.db")
	v.SetDefault("dataFile", "")
	v.SetDefault("seed", 0)
	v.SetDefault("githubUser", "Rai220")
	v.SetDefault("githubToken", "")
	v.SetDefault("telegramChannel", "robofuture")
	v.SetDefault("pypiPackage", "gigachat")
	v.SetDefault("httpTimeout", 10*time.Second)
	v.SetDefault("liveTTL", 15*time.Minute)
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.to", "")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "")
}

// Load reads configuration. An empty path searches ./config.yaml; a missing
// file is only an error when the path was given explicitly.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Hosting platforms inject a bare PORT.
	if err := v.BindEnv("port", EnvPrefix+"_PORT", "PORT"); err != nil {
		return Config{}, fmt.Errorf("bind port env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Mode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("invalid mode %q, want debug, release or test", c.Mode)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("httpTimeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.LiveTTL < 0 {
		return fmt.Errorf("liveTTL must not be negative, got %s", c.LiveTTL)
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
