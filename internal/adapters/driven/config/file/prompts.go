package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// promptExt is the file extension of prompt templates.
const promptExt = ".txt"

// PromptStore loads LLM prompt overrides from user-editable files on disk.
// A prompt with no file is reported as not found so the caller can use its
// built-in template.
//
// The prompt directory and its README are created on first Load, not in
// the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to $XDG_CONFIG_HOME/sentinel/prompts.
func NewPromptStore(promptDir string) *PromptStore {
	if promptDir == "" {
		promptDir = DefaultPromptDir("")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}
}

// Load returns the prompt template for the given name.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("load prompt %q: %w", name, domain.ErrNotFound)
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+promptExt))
	if err != nil {
		return "", err
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", os.ErrNotExist
	}
	return prompt, nil
}

func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# Sentinel Prompts

Drop a file here to replace one of Sentinel's built-in LLM prompts.

## Files

- ` + "`" + driven.PromptReportSummary + promptExt + "`" + ` - asks for the summary of a report
- ` + "`" + driven.PromptSystem + promptExt + "`" + ` - system prompt sent with every request

An empty or missing file means the built-in prompt is used.

## Placeholders

The report summary prompt may use:
- ` + "`{{repo}}`" + ` - repository, or "all subscribed repositories"
- ` + "`{{since}}`" + ` / ` + "`{{until}}`" + ` - the report window
- ` + "`{{language}}`" + ` - the configured summary language
- ` + "`{{content}}`" + ` - the Markdown report

Edits are picked up by running commands without a restart.
`
	return os.WriteFile(path, []byte(content), 0600)
}
