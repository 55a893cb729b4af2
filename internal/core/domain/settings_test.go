package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	assert.True(t, AIProviderOllama.IsValid())
	assert.True(t, AIProviderOpenAI.IsValid())
	assert.True(t, AIProviderAnthropic.IsValid())
	assert.False(t, AIProviderNone.IsValid())
	assert.False(t, AIProvider("gemini").IsValid())
}

func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Ollama (local)", AIProviderOllama.Description())
	assert.Equal(t, "Disabled", AIProviderNone.Description())
	assert.Equal(t, "Unknown", AIProvider("other").Description())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		want     bool
	}{
		{"no provider", LLMSettings{}, false},
		{"openai without key", LLMSettings{Provider: AIProviderOpenAI}, false},
		{"openai with key", LLMSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"}, true},
		{"anthropic with key", LLMSettings{Provider: AIProviderAnthropic, APIKey: "key"}, true},
		{"ollama needs no key", LLMSettings{Provider: AIProviderOllama}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.IsConfigured())
		})
	}
}

func TestEmailSettings_IsConfigured(t *testing.T) {
	full := EmailSettings{
		Enabled:        true,
		SMTPServer:     "smtp.example.com",
		SMTPPort:       465,
		SenderEmail:    "bot@example.com",
		SenderPassword: "secret",
	}
	assert.True(t, full.IsConfigured())

	disabled := full
	disabled.Enabled = false
	assert.False(t, disabled.IsConfigured())

	noPassword := full
	noPassword.SenderPassword = ""
	assert.False(t, noPassword.IsConfigured())
}

func TestEmailSettings_Subject(t *testing.T) {
	day := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "GitHub Updates: acme/widget - 2024-01-05", EmailSettings{}.Subject("acme/widget", day))
	assert.Equal(t, "[acme/widget] 2024-01-05",
		EmailSettings{SubjectTemplate: "[{repo}] {date}"}.Subject("acme/widget", day))
}

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	assert.Equal(t, DefaultItemsPerPage, cfg.GitHub.ItemsPerPage)
	assert.Equal(t, DefaultMaxPages, cfg.GitHub.MaxPages)
	assert.Equal(t, DefaultLanguage, cfg.Report.Language)
	assert.Equal(t, DefaultWebAddr, cfg.Web.Addr)
	assert.Equal(t, DefaultSchedulerInterval, cfg.Scheduler.Interval)
	assert.Equal(t, 465, cfg.Email.SMTPPort)
}
