// Package predictor provides a client for the external stock prediction service.
package predictor

import "time"

// Config holds configuration for the prediction service client.
type Config struct {
	BaseURL string        // Base URL of the service (e.g., "http://localhost:5000")
	Timeout time.Duration // HTTP request timeout
}

// Enabled reports whether a prediction service is configured.
func (c Config) Enabled() bool {
	return c.BaseURL != ""
}
