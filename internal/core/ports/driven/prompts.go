package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations return an error and the
	// caller falls back to its built-in template.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptReportSummary asks for a structured abstract of a report.
	// Placeholders: {{repo}}, {{since}}, {{until}}, {{language}}, {{content}}.
	PromptReportSummary = "report_summary"

	// PromptSystem is the system prompt sent with every summary request.
	// This prompt has no placeholders.
	PromptSystem = "system"
)
