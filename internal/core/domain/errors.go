package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRepo indicates a repository identifier is not of the form owner/name.
	ErrInvalidRepo = errors.New("invalid repository, expected owner/name")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Report summarisation is disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrTokenMissing indicates no GitHub token was configured.
	// Commands that fetch from GitHub cannot run without one.
	ErrTokenMissing = errors.New("github token not configured")

	// ErrNotifierUnavailable indicates no notification channel is enabled.
	ErrNotifierUnavailable = errors.New("notifier unavailable")

	// ErrSchedulerRunning indicates the scheduler loop is already running.
	ErrSchedulerRunning = errors.New("scheduler already running")
)
