// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The report pipeline, leaf first:
//
//   - Collector: fetches one repository within a time window
//   - Aggregator: runs the collector over many repositories
//   - Assembler: renders bundles into Markdown
//   - SummaryAppender: prepends an optional LLM summary
//   - ReportService: drives the above and hands reports to delivery
//   - Scheduler: repeats ReportService.RunCycle on an interval
//
// Services are pure Go with no CGO or external dependencies.
package services
