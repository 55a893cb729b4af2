// Package domain defines the core business entities for Sentinel.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RepoID: an "owner/name" repository identifier
//   - TimeWindow: the optional since/until range bounding "recent" items
//   - RepoUpdateBundle: releases, commits, issues and pull requests fetched
//     for one repository in one cycle
//   - Report: an assembled Markdown report and its optional summary
//   - AppConfig: the explicit configuration value built once at startup
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
