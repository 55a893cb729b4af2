package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

func TestSettingsShow(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.entries = []driving.SettingEntry{
		{Key: "github.token", Value: "ghp_****", Source: "env"},
		{Key: "github.max_pages", Value: "3", Source: "default"},
		{Key: "llm.provider", Value: "", Source: "default"},
	}

	for _, args := range [][]string{{"settings"}, {"settings", "show"}} {
		out, err := execute(t, args...)
		require.NoError(t, err)
		assert.Contains(t, out, "Config file: /tmp/sentinel/config.toml")
		assert.Contains(t, out, "[github]")
		assert.Contains(t, out, "[llm]")
		assert.Contains(t, out, "ghp_****  (env)")
		assert.Contains(t, out, "(not set)")
		assert.Less(t, strings.Index(out, "[github]"), strings.Index(out, "[llm]"))
	}
}

func TestSettingsSetAndUnset(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "set", "scheduler.interval", "12h")
	require.NoError(t, err)
	assert.Contains(t, out, "Set scheduler.interval")
	assert.Equal(t, "12h", ts.settings.values["scheduler.interval"])

	out, err = execute(t, "settings", "unset", "scheduler.interval")
	require.NoError(t, err)
	assert.Contains(t, out, "Unset scheduler.interval")
	assert.NotContains(t, ts.settings.values, "scheduler.interval")

	_, err = execute(t, "settings", "unset", "scheduler.interval")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettingsSet_Error(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.setErr = errors.New("invalid duration")

	_, err := execute(t, "settings", "set", "scheduler.interval", "soon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set scheduler.interval: invalid duration")
}

func TestSettingsSetToken(t *testing.T) {
	t.Run("from argument", func(t *testing.T) {
		ts, cleanup := setupTestServices()
		defer cleanup()

		out, err := execute(t, "settings", "set-token", "ghp_abc")
		require.NoError(t, err)
		assert.Contains(t, out, "Stored github.token")
		assert.Equal(t, "ghp_abc", ts.settings.values["github.token"])
	})

	t.Run("from stdin", func(t *testing.T) {
		ts, cleanup := setupTestServices()
		defer cleanup()
		rootCmd.SetIn(strings.NewReader("sk-secret\n"))
		defer rootCmd.SetIn(nil)

		out, err := execute(t, "settings", "set-token", "--key", "llm.api_key")
		require.NoError(t, err)
		assert.Contains(t, out, "Enter value for llm.api_key")
		assert.NotContains(t, out, "sk-secret")
		assert.Equal(t, "sk-secret", ts.settings.values["llm.api_key"])
	})

	t.Run("rejects non-secret keys", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()

		_, err := execute(t, "settings", "set-token", "--key", "web.addr", ":9000")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects empty value", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()
		rootCmd.SetIn(strings.NewReader("\n"))
		defer rootCmd.SetIn(nil)

		_, err := execute(t, "settings", "set-token")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestReadSecret_NonTerminal(t *testing.T) {
	assert.Equal(t, "token", readSecret(strings.NewReader("  token  \nrest")))
	assert.Equal(t, "", readSecret(strings.NewReader("")))
}

func TestSettingsCommands_ServiceNotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	settingsService = nil

	for _, args := range [][]string{
		{"settings", "show"},
		{"settings", "set", "a.b", "c"},
		{"settings", "unset", "a.b"},
		{"settings", "set-token", "x"},
	} {
		_, err := execute(t, args...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "settings service not configured")
	}
}

func TestSettingsCheck(t *testing.T) {
	t.Run("all good", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()
		oldCheck := llmCheck
		defer func() { llmCheck = oldCheck }()
		llmCheck = func(context.Context) error { return nil }
		appConfig.LLM.Provider = domain.AIProviderOllama
		appConfig.LLM.Model = "llama3.2"

		out, err := execute(t, "settings", "check")
		require.NoError(t, err)
		assert.Contains(t, out, "GitHub: token set")
		assert.Contains(t, out, "LLM: Ollama (local) reachable, model llama3.2")
		assert.Contains(t, out, "Email: disabled")
	})

	t.Run("failures", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()
		oldCheck := llmCheck
		defer func() { llmCheck = oldCheck }()
		llmCheck = func(context.Context) error { return domain.ErrLLMUnavailable }
		appConfig.GitHub.Token = ""
		appConfig.LLM.Provider = domain.AIProviderOpenAI
		appConfig.Email.Enabled = true

		out, err := execute(t, "settings", "check")
		require.Error(t, err)
		assert.Contains(t, out, "GitHub: github token not configured")
		assert.Contains(t, out, "LLM: LLM service unavailable")
		assert.Contains(t, out, "Email: enabled but incomplete")
	})

	t.Run("llm disabled", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()

		out, err := execute(t, "settings", "check")
		require.NoError(t, err)
		assert.Contains(t, out, "LLM: disabled")
	})
}
