package domain

import (
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderNone disables summarisation.
	AIProviderNone AIProvider = ""

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API (or any compatible endpoint).
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderNone:
		return "Disabled"
	default:
		return unknownDescription
	}
}

// GitHubSettings configures the GitHub API client.
type GitHubSettings struct {
	// Token is the personal access token used as bearer credential.
	Token string

	// BaseURL overrides the API endpoint (GitHub Enterprise). Empty means api.github.com.
	BaseURL string

	// ItemsPerPage is the per_page query value.
	ItemsPerPage int

	// MaxPages bounds how many pages are followed per endpoint.
	MaxPages int

	// RequestsPerSecond is the proactive throttle. Zero disables throttling.
	RequestsPerSecond float64
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible APIs).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// Temperature controls randomness of summaries.
	Temperature float64

	// MaxTokens bounds the summary length.
	MaxTokens int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// ReportSettings configures report export and summarisation.
type ReportSettings struct {
	// ExportDir is where report files are written.
	ExportDir string

	// Language is the target language of LLM summaries.
	Language string
}

// EmailSettings configures the SMTP notifier.
type EmailSettings struct {
	Enabled         bool
	SMTPServer      string
	SMTPPort        int
	SenderEmail     string
	SenderPassword  string
	Recipients      []string
	SubjectTemplate string
}

// DefaultSubjectTemplate is used when no subject template is configured.
const DefaultSubjectTemplate = "GitHub Updates: {repo} - {date}"

// IsConfigured returns true if all fields needed to send mail are set.
func (e EmailSettings) IsConfigured() bool {
	return e.Enabled && e.SMTPServer != "" && e.SMTPPort > 0 &&
		e.SenderEmail != "" && e.SenderPassword != ""
}

// Subject renders the subject template for a repository and day.
func (e EmailSettings) Subject(repo string, day time.Time) string {
	tmpl := e.SubjectTemplate
	if tmpl == "" {
		tmpl = DefaultSubjectTemplate
	}
	return strings.NewReplacer(
		"{repo}", repo,
		"{date}", day.Format(DateLayout),
	).Replace(tmpl)
}

// StorageSettings configures local persistence.
type StorageSettings struct {
	// DataDir holds the SQLite database.
	DataDir string
}

// WebSettings configures the dashboard server.
type WebSettings struct {
	Addr string
}

// AppConfig is the explicit configuration value constructed once at process
// start and passed to every component constructor.
type AppConfig struct {
	GitHub    GitHubSettings
	LLM       LLMSettings
	Report    ReportSettings
	Email     EmailSettings
	Scheduler SchedulerConfig
	Storage   StorageSettings
	Web       WebSettings
}

// Default configuration values.
const (
	DefaultItemsPerPage      = 100
	DefaultMaxPages          = 3
	DefaultRequestsPerSecond = 1.2
	DefaultLanguage          = "English"
	DefaultWebAddr           = ":8080"
	DefaultLLMTemperature    = 0.7
	DefaultLLMMaxTokens      = 2000
)

// DefaultAppConfig returns sensible defaults. Directory fields are left empty
// and resolved by the settings service.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		GitHub: GitHubSettings{
			ItemsPerPage:      DefaultItemsPerPage,
			MaxPages:          DefaultMaxPages,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		LLM: LLMSettings{
			Temperature: DefaultLLMTemperature,
			MaxTokens:   DefaultLLMMaxTokens,
		},
		Report: ReportSettings{
			Language: DefaultLanguage,
		},
		Email: EmailSettings{
			SMTPPort:        465,
			SubjectTemplate: DefaultSubjectTemplate,
		},
		Scheduler: DefaultSchedulerConfig(),
		Web:       WebSettings{Addr: DefaultWebAddr},
	}
}
