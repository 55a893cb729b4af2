package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
)

const plainReport = "# Repository Report: acme/widget\n\nbody\n"

func newTestSummary(llm driven.LLMService, prompts driven.PromptStore) *SummaryAppender {
	return NewSummaryAppender(llm, prompts, domain.LLMSettings{Temperature: 0.2, MaxTokens: 500}, "English")
}

func TestSummaryAppender_Success(t *testing.T) {
	llm := &mockLLM{response: "  Things happened.  \n"}
	s := newTestSummary(llm, nil)

	out, ok := s.AppendSummary(context.Background(), plainReport, widget, januaryWindow())

	require.True(t, ok)
	assert.Equal(t,
		"# AI Summary\n\nThings happened.\n\n---\n\n# Original Report\n\n"+plainReport,
		out)
	assert.Equal(t, 500, llm.lastOpts.MaxTokens)
	assert.InDelta(t, 0.2, llm.lastOpts.Temperature, 1e-9)
	assert.NotEmpty(t, llm.lastOpts.System)
}

func TestSummaryAppender_PromptPlaceholders(t *testing.T) {
	llm := &mockLLM{response: "ok"}
	s := newTestSummary(llm, nil)

	_, ok := s.AppendSummary(context.Background(), plainReport, widget, januaryWindow())
	require.True(t, ok)

	assert.Contains(t, llm.lastPrompt, "acme/widget")
	assert.Contains(t, llm.lastPrompt, "2024-01-01T00:00:00Z")
	assert.Contains(t, llm.lastPrompt, "2024-01-31T00:00:00Z")
	assert.Contains(t, llm.lastPrompt, "English")
	assert.Contains(t, llm.lastPrompt, plainReport)
	assert.NotContains(t, llm.lastPrompt, "{{")
}

func TestSummaryAppender_PromptStoreOverride(t *testing.T) {
	llm := &mockLLM{response: "ok"}
	prompts := &mockPromptStore{prompts: map[string]string{
		driven.PromptReportSummary: "Summarise {{repo}} ({{since}} - {{until}}) in {{language}}:\n{{content}}",
		driven.PromptSystem:        "custom system",
	}}
	s := newTestSummary(llm, prompts)

	_, ok := s.AppendSummary(context.Background(), "X", "", domain.TimeWindow{})
	require.True(t, ok)

	assert.Equal(t, "Summarise all subscribed repositories (the beginning - now) in English:\nX", llm.lastPrompt)
	assert.Equal(t, "custom system", llm.lastOpts.System)
}

func TestSummaryAppender_FailuresReturnOriginal(t *testing.T) {
	tests := []struct {
		name string
		llm  driven.LLMService
	}{
		{"no llm", nil},
		{"collaborator error", &mockLLM{err: errors.New("401 unauthorized")}},
		{"empty output", &mockLLM{response: "   "}},
		{"panic", &mockLLM{panicWith: "malformed response"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSummary(tt.llm, nil)

			var out string
			var ok bool
			assert.NotPanics(t, func() {
				out, ok = s.AppendSummary(context.Background(), plainReport, widget, januaryWindow())
			})
			assert.False(t, ok)
			assert.Equal(t, plainReport, out)
		})
	}
}

func TestSummaryAppender_Enabled(t *testing.T) {
	assert.False(t, newTestSummary(nil, nil).Enabled())
	assert.True(t, newTestSummary(&mockLLM{}, nil).Enabled())

	var nilAppender *SummaryAppender
	assert.False(t, nilAppender.Enabled())
}
