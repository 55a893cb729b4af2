package tui

import "errors"

// ErrMissingSubscriptionService is returned when the subscription service is not provided.
var ErrMissingSubscriptionService = errors.New("tui: subscription service is required")

// ErrMissingReportService is returned when the report service is not provided.
var ErrMissingReportService = errors.New("tui: report service is required")
