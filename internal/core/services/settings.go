package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyGitHubToken       = "github.token"
	keyGitHubBaseURL     = "github.base_url"
	keyGitHubPerPage     = "github.items_per_page"
	keyGitHubMaxPages    = "github.max_pages"
	keyGitHubRPS         = "github.requests_per_second"
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMTemperature    = "llm.temperature"
	keyLLMMaxTokens      = "llm.max_tokens"
	keyReportLanguage    = "report.language"
	keyReportExportDir   = "report.export_dir"
	keySchedInterval     = "scheduler.interval"
	keySchedErrorBackoff = "scheduler.error_backoff"
	keySchedSummarize    = "scheduler.summarize"
	keyEmailEnabled      = "email.enabled"
	keyEmailServer       = "email.smtp_server"
	keyEmailPort         = "email.smtp_port"
	keyEmailSender       = "email.sender_email"
	keyEmailPassword     = "email.sender_password"
	keyEmailRecipients   = "email.recipients"
	keyEmailSubject      = "email.subject_template"
	keyStorageDataDir    = "storage.data_dir"
	keyWebAddr           = "web.addr"
)

// Environment variables that override the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvGitHubToken   = "GITHUB_TOKEN"
	EnvLLMAPIKey     = "SENTINEL_LLM_API_KEY"
	EnvSMTPPassword  = "SENTINEL_SMTP_PASSWORD"
	sourceDefault    = "default"
	sourceFile       = "file"
	sourceEnv        = "env"
	maskedSecretText = "********"
)

// valueKind is how a setting's string form is parsed.
type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
	kindDuration
	kindList
	kindProvider
)

type settingSpec struct {
	kind   valueKind
	env    string
	secret bool
}

var settingSpecs = map[string]settingSpec{
	keyGitHubToken:       {kind: kindString, env: EnvGitHubToken, secret: true},
	keyGitHubBaseURL:     {kind: kindString},
	keyGitHubPerPage:     {kind: kindInt},
	keyGitHubMaxPages:    {kind: kindInt},
	keyGitHubRPS:         {kind: kindFloat},
	keyLLMProvider:       {kind: kindProvider},
	keyLLMModel:          {kind: kindString},
	keyLLMBaseURL:        {kind: kindString},
	keyLLMAPIKey:         {kind: kindString, env: EnvLLMAPIKey, secret: true},
	keyLLMTemperature:    {kind: kindFloat},
	keyLLMMaxTokens:      {kind: kindInt},
	keyReportLanguage:    {kind: kindString},
	keyReportExportDir:   {kind: kindString},
	keySchedInterval:     {kind: kindDuration},
	keySchedErrorBackoff: {kind: kindDuration},
	keySchedSummarize:    {kind: kindBool},
	keyEmailEnabled:      {kind: kindBool},
	keyEmailServer:       {kind: kindString},
	keyEmailPort:         {kind: kindInt},
	keyEmailSender:       {kind: kindString},
	keyEmailPassword:     {kind: kindString, env: EnvSMTPPassword, secret: true},
	keyEmailRecipients:   {kind: kindList},
	keyEmailSubject:      {kind: kindString},
	keyStorageDataDir:    {kind: kindString},
	keyWebAddr:           {kind: kindString},
}

// defaultLLMModels is the model used when llm.model is unset.
var defaultLLMModels = map[domain.AIProvider]string{
	domain.AIProviderOpenAI:    "gpt-4o-mini",
	domain.AIProviderAnthropic: "claude-3-5-haiku-latest",
	domain.AIProviderOllama:    "llama3.2",
}

// Dirs holds the platform default directories, resolved by the caller.
type Dirs struct {
	DataDir   string
	ExportDir string
}

// SettingsService builds the application configuration from defaults, the
// config file and environment overrides, in that order of precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	dirs        Dirs
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, dirs Dirs) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		dirs:        dirs,
		lookupEnv:   os.LookupEnv,
	}
}

// Load builds the effective configuration.
func (s *SettingsService) Load() (*domain.AppConfig, error) {
	cfg := domain.DefaultAppConfig()
	cfg.Storage.DataDir = s.dirs.DataDir
	cfg.Report.ExportDir = s.dirs.ExportDir

	cfg.GitHub.Token = s.getString(keyGitHubToken, "")
	cfg.GitHub.BaseURL = s.getString(keyGitHubBaseURL, "")
	cfg.GitHub.ItemsPerPage = s.getInt(keyGitHubPerPage, cfg.GitHub.ItemsPerPage)
	cfg.GitHub.MaxPages = s.getInt(keyGitHubMaxPages, cfg.GitHub.MaxPages)
	cfg.GitHub.RequestsPerSecond = s.getFloat(keyGitHubRPS, cfg.GitHub.RequestsPerSecond)

	provider := domain.AIProvider(s.getString(keyLLMProvider, ""))
	if provider != domain.AIProviderNone && !provider.IsValid() {
		return nil, fmt.Errorf("%w: unknown llm provider %q", domain.ErrInvalidInput, provider)
	}
	cfg.LLM.Provider = provider
	cfg.LLM.Model = s.getString(keyLLMModel, defaultLLMModels[provider])
	cfg.LLM.BaseURL = s.getString(keyLLMBaseURL, "")
	cfg.LLM.APIKey = s.getString(keyLLMAPIKey, "")
	cfg.LLM.Temperature = s.getFloat(keyLLMTemperature, cfg.LLM.Temperature)
	cfg.LLM.MaxTokens = s.getInt(keyLLMMaxTokens, cfg.LLM.MaxTokens)

	cfg.Report.Language = s.getString(keyReportLanguage, cfg.Report.Language)
	cfg.Report.ExportDir = expandHome(s.getString(keyReportExportDir, cfg.Report.ExportDir))

	var err error
	if cfg.Scheduler.Interval, err = s.getDuration(keySchedInterval, cfg.Scheduler.Interval); err != nil {
		return nil, err
	}
	if cfg.Scheduler.ErrorBackoff, err = s.getDuration(keySchedErrorBackoff, cfg.Scheduler.ErrorBackoff); err != nil {
		return nil, err
	}
	cfg.Scheduler.Summarize = s.getBool(keySchedSummarize, cfg.Scheduler.Summarize)
	cfg.Scheduler = cfg.Scheduler.Normalised()

	cfg.Email.Enabled = s.getBool(keyEmailEnabled, cfg.Email.Enabled)
	cfg.Email.SMTPServer = s.getString(keyEmailServer, "")
	cfg.Email.SMTPPort = s.getInt(keyEmailPort, cfg.Email.SMTPPort)
	cfg.Email.SenderEmail = s.getString(keyEmailSender, "")
	cfg.Email.SenderPassword = s.getString(keyEmailPassword, "")
	cfg.Email.Recipients = s.configStore.GetStringSlice(keyEmailRecipients)
	cfg.Email.SubjectTemplate = s.getString(keyEmailSubject, cfg.Email.SubjectTemplate)

	cfg.Storage.DataDir = expandHome(s.getString(keyStorageDataDir, cfg.Storage.DataDir))
	cfg.Web.Addr = s.getString(keyWebAddr, cfg.Web.Addr)

	return &cfg, nil
}

// Set validates value against key's type and writes it to the config file.
func (s *SettingsService) Set(key, value string) error {
	spec, ok := settingSpecs[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	typed, err := parseSetting(spec.kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	return s.configStore.Set(key, typed)
}

// Unset removes key from the config file.
func (s *SettingsService) Unset(key string) error {
	if _, ok := settingSpecs[key]; !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Unset(key)
}

// Entries returns every known key with its effective value and source.
func (s *SettingsService) Entries() ([]driving.SettingEntry, error) {
	cfg, err := s.Load()
	if err != nil {
		return nil, err
	}
	effective := effectiveValues(cfg)

	keys := make([]string, 0, len(settingSpecs))
	for key := range settingSpecs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]driving.SettingEntry, 0, len(keys))
	for _, key := range keys {
		spec := settingSpecs[key]
		entry := driving.SettingEntry{Key: key, Value: effective[key], Source: sourceDefault}
		if _, ok := s.configStore.Get(key); ok {
			entry.Source = sourceFile
		}
		if spec.env != "" {
			if v, ok := s.lookupEnv(spec.env); ok && v != "" {
				entry.Source = sourceEnv
			}
		}
		if spec.secret && entry.Value != "" {
			entry.Value = maskedSecretText
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults. Environment overrides
// win over the file for keys that declare one.

func (s *SettingsService) getString(key, defaultVal string) string {
	if env := settingSpecs[key].env; env != "" {
		if v, ok := s.lookupEnv(env); ok && v != "" {
			return v
		}
	}
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	return d, nil
}

func parseSetting(kind valueKind, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case kindInt:
		return strconv.Atoi(value)
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	case kindBool:
		return strconv.ParseBool(value)
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			return nil, fmt.Errorf("duration must be positive")
		}
		return d.String(), nil
	case kindList:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	case kindProvider:
		provider := domain.AIProvider(value)
		if provider != domain.AIProviderNone && !provider.IsValid() {
			return nil, fmt.Errorf("unknown provider %q (want ollama, openai or anthropic)", value)
		}
		return value, nil
	default:
		return value, nil
	}
}

func effectiveValues(cfg *domain.AppConfig) map[string]string {
	return map[string]string{
		keyGitHubToken:       cfg.GitHub.Token,
		keyGitHubBaseURL:     cfg.GitHub.BaseURL,
		keyGitHubPerPage:     strconv.Itoa(cfg.GitHub.ItemsPerPage),
		keyGitHubMaxPages:    strconv.Itoa(cfg.GitHub.MaxPages),
		keyGitHubRPS:         strconv.FormatFloat(cfg.GitHub.RequestsPerSecond, 'g', -1, 64),
		keyLLMProvider:       cfg.LLM.Provider.String(),
		keyLLMModel:          cfg.LLM.Model,
		keyLLMBaseURL:        cfg.LLM.BaseURL,
		keyLLMAPIKey:         cfg.LLM.APIKey,
		keyLLMTemperature:    strconv.FormatFloat(cfg.LLM.Temperature, 'g', -1, 64),
		keyLLMMaxTokens:      strconv.Itoa(cfg.LLM.MaxTokens),
		keyReportLanguage:    cfg.Report.Language,
		keyReportExportDir:   cfg.Report.ExportDir,
		keySchedInterval:     cfg.Scheduler.Interval.String(),
		keySchedErrorBackoff: cfg.Scheduler.ErrorBackoff.String(),
		keySchedSummarize:    strconv.FormatBool(cfg.Scheduler.Summarize),
		keyEmailEnabled:      strconv.FormatBool(cfg.Email.Enabled),
		keyEmailServer:       cfg.Email.SMTPServer,
		keyEmailPort:         strconv.Itoa(cfg.Email.SMTPPort),
		keyEmailSender:       cfg.Email.SenderEmail,
		keyEmailPassword:     cfg.Email.SenderPassword,
		keyEmailRecipients:   strings.Join(cfg.Email.Recipients, ","),
		keyEmailSubject:      cfg.Email.SubjectTemplate,
		keyStorageDataDir:    cfg.Storage.DataDir,
		keyWebAddr:           cfg.Web.Addr,
	}
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
