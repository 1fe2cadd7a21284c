// Package config provides Viper-based configuration management for aula
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/aulaschool/aula/pkg/domain"
)

// DefaultBaseURL is the production API gateway.
const DefaultBaseURL = "https://api.aula.school"

// Config represents the complete aula configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
	Chat    ChatConfig    `mapstructure:"chat"`
	Roles   RolesConfig   `mapstructure:"roles"`
	Output  OutputConfig  `mapstructure:"output"`
}

// APIConfig points the client at a backend
type APIConfig struct {
	BaseURL  string `mapstructure:"base_url" validate:"required,url"`
	SchoolID int64  `mapstructure:"school_id" validate:"gte=0"`
}

// SessionConfig controls where the bearer token is persisted
type SessionConfig struct {
	TokenFile string `mapstructure:"token_file" validate:"required"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// ChatConfig tunes the terminal chat widget
type ChatConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"min=1s"`
}

// RolesConfig maps backend role IDs to teachers and students
type RolesConfig struct {
	Teacher []int64 `mapstructure:"teacher" validate:"min=1,dive,gt=0"`
	Student []int64 `mapstructure:"student" validate:"min=1,dive,gt=0"`
}

// RoleSet converts the configured IDs for the client.
func (r RolesConfig) RoleSet() domain.RoleSet {
	return domain.RoleSet{Teacher: r.Teacher, Student: r.Student}
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// Load reads configuration from file and environment variables.
// Flag values are applied afterwards by the caller through Viper.
func Load(cfgFile string) (*Config, error) {
	return LoadWith(viper.New(), cfgFile)
}

// LoadWith is Load on a caller-provided Viper instance, so that cobra flags
// bound to v take precedence over file and environment values.
func LoadWith(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Search paths for .aula.yaml
		v.SetConfigName(".aula")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/aula")
	}

	// AULA_API_BASE_URL, AULA_CHAT_POLL_INTERVAL, ...
	v.SetEnvPrefix("AULA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.school_id", 0)

	v.SetDefault("session.token_file", "~/.aula/token")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("chat.poll_interval", 5*time.Second)

	v.SetDefault("roles.teacher", domain.DefaultRoles.Teacher)
	v.SetDefault("roles.student", domain.DefaultRoles.Student)

	v.SetDefault("output.colors", true)
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})
	return v
}()

// Validate checks the configuration for errors
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := verrs[0]
	key := configKey(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", key)
	case "url":
		return fmt.Errorf("%s: %q is not a valid URL", key, fe.Value())
	case "oneof":
		return fmt.Errorf("invalid %s: %v (must be one of %s)", key, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Errorf("%s must be at least %s", key, fe.Param())
	default:
		return fmt.Errorf("%s failed %s=%s", key, fe.Tag(), fe.Param())
	}
}

// configKey turns a validator namespace ("Config.api.base_url") into the
// dotted key used in files and flags ("api.base_url").
func configKey(ns string) string {
	_, key, ok := strings.Cut(ns, ".")
	if !ok {
		return ns
	}
	return key
}
