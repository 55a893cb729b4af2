// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Sentinel. It lets AI assistants manage subscriptions and request reports.
package mcp

import "errors"

// ErrMissingSubscriptionService is returned when the subscription service is not provided.
var ErrMissingSubscriptionService = errors.New("mcp: subscription service is required")

// ErrMissingReportService is returned when the report service is not provided.
var ErrMissingReportService = errors.New("mcp: report service is required")
