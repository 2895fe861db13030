// Package config loads runtime settings from a YAML file, a .env file and
// the environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all settings.
type Config struct {
	World  WorldConfig  `yaml:"world"`
	Admin  AdminConfig  `yaml:"admin"`
	Engine EngineConfig `yaml:"engine"`
	Log    LogConfig    `yaml:"log"`
	UI     UIConfig     `yaml:"ui"`
}

// WorldConfig selects the world catalog. An empty Dir uses the embedded
// default world.
type WorldConfig struct {
	Dir string `yaml:"dir"`
}

// AdminConfig selects where the admin flag is persisted.
type AdminConfig struct {
	Backend   string `yaml:"backend" validate:"oneof=file redis memory"`
	Dir       string `yaml:"dir"` // file backend; empty means ~/.dragonsrealm
	RedisAddr string `yaml:"redis_addr" validate:"required_if=Backend redis"`
	Key       string `yaml:"key" validate:"required"`
}

// EngineConfig tunes the game engine.
type EngineConfig struct {
	WalkDuration     time.Duration `yaml:"walk_duration" validate:"gt=0"`
	MaxMessageLength int           `yaml:"max_message_length" validate:"gte=1,lte=1000"`
	MessageHistory   int           `yaml:"message_history" validate:"gte=1"`
}

// LogConfig configures slog. File is a path, "-" for stderr or "none" to
// discard; empty means dragonsrealm.log in the admin directory.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
	File   string `yaml:"file"`
}

// UIConfig picks the front end.
type UIConfig struct {
	Plain bool `yaml:"plain"`
	Trace bool `yaml:"trace"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Admin: AdminConfig{
			Backend: "file",
			Key:     "dragons_realm_admin",
		},
		Engine: EngineConfig{
			WalkDuration:     200 * time.Millisecond,
			MaxMessageLength: 140,
			MessageHistory:   50,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. A .env file in the working directory is
// loaded if present. path may be empty, in which case only defaults and
// the environment apply.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnv overrides fields from DRAGONSREALM_* variables. LOG_LEVEL and
// REDIS_ADDR are honoured as the shorter, conventional names.
func (c *Config) applyEnv() error {
	setString(&c.World.Dir, "DRAGONSREALM_WORLD_DIR")
	setString(&c.Admin.Backend, "DRAGONSREALM_ADMIN_BACKEND")
	setString(&c.Admin.Dir, "DRAGONSREALM_ADMIN_DIR")
	setString(&c.Admin.Key, "DRAGONSREALM_ADMIN_KEY")
	setString(&c.Admin.RedisAddr, "REDIS_ADDR", "DRAGONSREALM_REDIS_ADDR")
	setString(&c.Log.Level, "LOG_LEVEL", "DRAGONSREALM_LOG_LEVEL")
	setString(&c.Log.Format, "DRAGONSREALM_LOG_FORMAT")
	setString(&c.Log.File, "DRAGONSREALM_LOG_FILE")

	if v, ok := lookup("DRAGONSREALM_WALK_DURATION"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DRAGONSREALM_WALK_DURATION value: %w", err)
		}
		c.Engine.WalkDuration = d
	}
	if err := setInt(&c.Engine.MaxMessageLength, "DRAGONSREALM_MAX_MESSAGE_LENGTH"); err != nil {
		return err
	}
	if err := setInt(&c.Engine.MessageHistory, "DRAGONSREALM_MESSAGE_HISTORY"); err != nil {
		return err
	}
	if err := setBool(&c.UI.Plain, "DRAGONSREALM_PLAIN"); err != nil {
		return err
	}
	return setBool(&c.UI.Trace, "DRAGONSREALM_TRACE")
}

// lookup returns the last set, non-empty variable among keys.
func lookup(keys ...string) (string, bool) {
	var (
		val   string
		found bool
	)
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok && v != "" {
			val, found = v, true
		}
	}
	return val, found
}

func setString(dst *string, keys ...string) {
	if v, ok := lookup(keys...); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", key, err)
	}
	*dst = b
	return nil
}
