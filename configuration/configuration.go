package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/arlobryn/palaver/internal/file"
)

var defaultConfig = Config{
	APIKey:         "API_KEY",
	APIHost:        "https://api.openai.com/v1",
	RequestTimeout: 60,
	Theme:          "forest",

	Chat: &ChatConfig{
		DefaultModel: "gpt-4o-mini",
		DatabasePath: "~/.palaver/chats.db",
		Temperature:  0.5,
	},
}

// Config holds configuration for the palaver tool.
type Config struct {
	APIKey         string `json:"api_key"`
	APIHost        string `json:"api_host"`
	RequestTimeout int    `json:"request_timeout"`
	Theme          string `json:"theme"`

	Chat *ChatConfig `json:"chat"`
}

// ChatConfig holds configuration for palaver chat.
type ChatConfig struct {
	// The model used for text generation.
	DefaultModel string `json:"default_model"`
	// The path of the SQLite database holding chats.
	DatabasePath string `json:"database_path"`
	// The default creativity parameter, in [0, 1].
	Temperature float32 `json:"temperature"`
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}
	if config.Chat == nil {
		return nil, errors.New("missing chat configuration")
	}

	expandedDatabasePath, err := file.ExpandPath(config.Chat.DatabasePath)
	if err != nil {
		return nil, errors.Wrap(err, "expanding database path")
	}
	config.Chat.DatabasePath = expandedDatabasePath
	return config, nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if err := os.WriteFile(path, bytes, 0644); err != nil {
		return errors.Wrap(err, "writing file")
	}
	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	ok, err := file.Exists(path)
	if err != nil {
		return errors.Wrap(err, "checking for config file")
	}
	if ok {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
