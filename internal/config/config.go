package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ChatFile    string   `toml:"chat_file" envconfig:"CHATSTAT_CHAT_FILE"`
	Senders     []string `toml:"senders" envconfig:"CHATSTAT_SENDERS"`
	Granularity string   `toml:"granularity" envconfig:"CHATSTAT_GRANULARITY" validate:"oneof=day hms hm hour 0 1 2 3"`
	OutputMode  string   `toml:"output_mode" envconfig:"CHATSTAT_OUTPUT_MODE" validate:"oneof=display save 0 1"`
	OutputDir   string   `toml:"output_dir" envconfig:"CHATSTAT_OUTPUT_DIR" validate:"required"`
	DPI         int      `toml:"dpi" envconfig:"CHATSTAT_DPI" validate:"min=300,max=400"`
	WordSplit   string   `toml:"word_split" envconfig:"CHATSTAT_WORD_SPLIT" validate:"oneof=space fields"`
	ChatRoot    string   `toml:"chat_root" envconfig:"CHATSTAT_CHAT_ROOT"`
	DBPath      string   `toml:"db_path" envconfig:"CHATSTAT_DB_PATH" validate:"required"`
	LogLevel    string   `toml:"log_level" envconfig:"CHATSTAT_LOG_LEVEL" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// DefaultPath is where Load looks when neither an explicit path nor
// $CHATSTAT_CONFIG is set.
func DefaultPath(home string) string {
	return filepath.Join(home, ".config", "chatstat", "config.toml")
}

func defaults(home string) *Config {
	return &Config{
		Granularity: "hour",
		OutputMode:  "display",
		OutputDir:   ".",
		DPI:         400,
		WordSplit:   "space",
		ChatRoot:    filepath.Join(home, "chats"),
		DBPath:      filepath.Join(home, ".config", "chatstat", "chatstat.db"),
		LogLevel:    "info",
	}
}

// Load layers defaults, the TOML file at path, and CHATSTAT_* environment
// variables. An empty path falls back to $CHATSTAT_CONFIG and then to
// DefaultPath; a missing default file is not an error, a missing explicit
// one is.
func Load(path string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := defaults(home)

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CHATSTAT_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath(home)
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	// tags carry the full CHATSTAT_ names so unprefixed variables are never read
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}

	cfg.normalize(home)
	return cfg, nil
}

func (c *Config) normalize(home string) {
	c.ChatFile = expandHome(c.ChatFile, home)
	c.ChatRoot = expandHome(c.ChatRoot, home)
	c.DBPath = expandHome(c.DBPath, home)
	c.OutputDir = expandHome(c.OutputDir, home)

	c.Granularity = strings.ToLower(strings.TrimSpace(c.Granularity))
	c.OutputMode = strings.ToLower(strings.TrimSpace(c.OutputMode))
	c.WordSplit = strings.ToLower(strings.TrimSpace(c.WordSplit))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate checks enumerated and ranged settings.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
