// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - UpdateFetcher: Fetches releases, commits, issues and pull requests (GitHub)
//   - SubscriptionStore: Subscribed repository persistence
//   - ReportStore: Writes and lists report files
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model operations. Without it, reports carry no summary.
//   - PromptStore: Custom prompt templates. Without it, built-in prompts are used.
//   - Notifier: Report delivery (email). Without it, reports are only written to disk.
//   - SchedulerStore: Scheduler run history. Without it, history is not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
