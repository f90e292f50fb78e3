package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	config, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig.APIHost, config.APIHost)
	assert.Equal(t, defaultConfig.Theme, config.Theme)
	require.NotNil(t, config.Chat)
	assert.Equal(t, defaultConfig.Chat.DefaultModel, config.Chat.DefaultModel)
	assert.Equal(t, defaultConfig.Chat.Temperature, config.Chat.Temperature)

	// The default config is now on disk for the user to edit.
	bytes, err := os.ReadFile(path)
	require.NoError(t, err)
	onDisk := &Config{}
	require.NoError(t, json.Unmarshal(bytes, onDisk))
	assert.Equal(t, defaultConfig.APIKey, onDisk.APIKey)
}

func TestParseExistingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	contents := `{
  "api_key": "secret",
  "api_host": "http://localhost:8080/v1",
  "request_timeout": 30,
  "theme": "mono",
  "chat": {
    "default_model": "gpt-4o",
    "database_path": "` + filepath.ToSlash(filepath.Join(dir, "chats.db")) + `",
    "temperature": 0.9
  }
}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	config, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", config.APIKey)
	assert.Equal(t, "http://localhost:8080/v1", config.APIHost)
	assert.Equal(t, 30, config.RequestTimeout)
	assert.Equal(t, "mono", config.Theme)
	assert.Equal(t, "gpt-4o", config.Chat.DefaultModel)
	assert.Equal(t, float32(0.9), config.Chat.Temperature)
}

func TestParseExpandsDatabasePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.json")
	config := defaultConfig
	chatConfig := *defaultConfig.Chat
	chatConfig.DatabasePath = "~/elsewhere/chats.db"
	config.Chat = &chatConfig
	require.NoError(t, config.save(path))

	parsed, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "elsewhere/chats.db"), parsed.Chat.DatabasePath)
}

func TestParseMissingChatSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_key": "secret"}`), 0644))

	_, err := Parse(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing chat configuration")
}
