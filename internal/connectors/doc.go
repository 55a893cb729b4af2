// Package connectors holds clients for the upstream services sentinel
// polls. The github subpackage implements driven.UpdateFetcher.
package connectors
