package services

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
	"github.com/custodia-labs/sentinel/internal/logger"
)

// Built-in prompts, used when the PromptStore has no override.
const (
	defaultSummaryPrompt = `Summarise the GitHub activity report for {{repo}} covering {{since}} to {{until}}.

Write the summary in {{language}} using these sections:
1. Overview
2. Key Updates
3. Bug Fixes
4. New Features
5. Notes

Be concise and base every statement on the report. Use Markdown.

Report:

{{content}}`

	defaultSystemPrompt = "You are an assistant that writes short, accurate summaries of software project activity."
)

const (
	summaryHeading  = "# AI Summary\n\n"
	originalHeading = "\n\n---\n\n# Original Report\n\n"
)

// SummaryAppender prepends an LLM summary to a report. It is strictly
// best-effort: every failure returns the original text.
type SummaryAppender struct {
	llm      driven.LLMService
	prompts  driven.PromptStore
	language string
	opts     driven.GenerateOptions
}

// NewSummaryAppender creates a summary appender. llm and prompts may be nil.
func NewSummaryAppender(
	llm driven.LLMService,
	prompts driven.PromptStore,
	settings domain.LLMSettings,
	language string,
) *SummaryAppender {
	if language == "" {
		language = domain.DefaultLanguage
	}
	return &SummaryAppender{
		llm:      llm,
		prompts:  prompts,
		language: language,
		opts: driven.GenerateOptions{
			MaxTokens:   settings.MaxTokens,
			Temperature: settings.Temperature,
		},
	}
}

// Enabled reports whether an LLM is configured.
func (s *SummaryAppender) Enabled() bool {
	return s != nil && s.llm != nil
}

// AppendSummary returns the summary block, a separator and the full original
// markdown, with ok true. On any failure (no LLM, error, panic or empty
// output) it returns markdown unchanged with ok false.
func (s *SummaryAppender) AppendSummary(
	ctx context.Context, markdown string, repo domain.RepoID, window domain.TimeWindow,
) (result string, ok bool) {
	if !s.Enabled() {
		return markdown, false
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("summarise %s: panic: %v\n%s", subject(repo), r, debug.Stack())
			result, ok = markdown, false
		}
	}()

	opts := s.opts
	opts.System = s.loadPrompt(driven.PromptSystem, defaultSystemPrompt)
	prompt := s.buildPrompt(markdown, repo, window)

	logger.Debug("summarise %s with %s", subject(repo), s.llm.ModelName())
	done := logger.Elapsed("summarise " + subject(repo))
	summary, err := s.llm.Generate(ctx, prompt, opts)
	done()
	if err != nil {
		logger.Error("summarise %s: %v", subject(repo), err)
		return markdown, false
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		logger.Warn("summarise %s: empty response", subject(repo))
		return markdown, false
	}

	return summaryHeading + summary + originalHeading + markdown, true
}

func (s *SummaryAppender) buildPrompt(markdown string, repo domain.RepoID, window domain.TimeWindow) string {
	tmpl := s.loadPrompt(driven.PromptReportSummary, defaultSummaryPrompt)
	return strings.NewReplacer(
		"{{repo}}", subject(repo),
		"{{since}}", boundLabel(window.Since, "the beginning"),
		"{{until}}", boundLabel(window.Until, "now"),
		"{{language}}", s.language,
		"{{content}}", markdown,
	).Replace(tmpl)
}

func (s *SummaryAppender) loadPrompt(name, fallback string) string {
	if s.prompts == nil {
		return fallback
	}
	prompt, err := s.prompts.Load(name)
	if err != nil || strings.TrimSpace(prompt) == "" {
		return fallback
	}
	return prompt
}

func subject(repo domain.RepoID) string {
	if repo == "" {
		return "all subscribed repositories"
	}
	return repo.String()
}

func boundLabel(t time.Time, absent string) string {
	if t.IsZero() {
		return absent
	}
	return t.UTC().Format(time.RFC3339)
}
