// Package github fetches repository activity from the GitHub REST API.
//
// The Client implements [driven.UpdateFetcher] over four endpoint kinds:
//
//   - GET /repos/{owner}/{repo}/releases
//   - GET /repos/{owner}/{repo}/commits (native since and until)
//   - GET /repos/{owner}/{repo}/issues (native since only, state=all)
//   - GET /repos/{owner}/{repo}/pulls (no time filter, state=all)
//
// Each endpoint exposes exactly the filtering GitHub supports natively. The
// remaining window filtering is done by the collector in the services
// package, so the same window means the same thing for every endpoint.
//
// # Authentication
//
// Requests carry a bearer token from a Personal Access Token (classic or
// fine-grained) through an oauth2 static token source. Authenticated
// clients get 5,000 API requests per hour.
//
// # Pagination
//
// List calls request per_page items (default 100) and follow the Link
// header for at most MaxPages pages (default 3). Reports only show recent
// activity, so deep history is not walked.
//
// # Rate Limiting
//
// Two mechanisms cooperate:
//
//  1. Proactive throttling: a token bucket limits requests to about 1.2
//     requests per second, staying under the hourly quota.
//
//  2. Reactive handling: every response's X-RateLimit-Remaining and
//     X-RateLimit-Reset headers are mirrored into the RateLimiter (absent
//     headers record 0). A 403 with no remaining quota sleeps until the
//     reset time and retries the same call once. A second exhaustion is
//     returned as *RateLimitError.
//
// The quota itself is owned by GitHub and shared by every process using the
// token; the mirrored counters are advisory.
//
// # Errors
//
// Non-2xx responses become *APIError, with helpers [IsNotFound],
// [IsUnauthorized], [IsForbidden] and [IsRateLimited]. The client never
// swallows errors; the collector decides that a failed endpoint means
// "no data".
package github
