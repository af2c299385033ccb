package api

import (
	"github.com/codeready-toolchain/logshield/pkg/database"
)

// ErrorResponse is returned for every 4xx and 5xx answer.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthCheck is the status of one component.
type HealthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Detectors int                    `json:"detectors"`
	Checks    map[string]HealthCheck `json:"checks"`
	Database  *database.HealthStatus `json:"database,omitempty"`
}

// Redaction describes one replaced span. The matched text is never returned.
type Redaction struct {
	Kind   string `json:"kind"`
	Start  int    `json:"start"`
	Length int    `json:"length"`
}

// MaskResponse is returned by POST /api/v1/mask.
type MaskResponse struct {
	Masked     string      `json:"masked"`
	Redactions []Redaction `json:"redactions"`
}

// DetectorInfo describes one catalog entry.
type DetectorInfo struct {
	Kind        string `json:"kind"`
	Priority    int    `json:"priority"`
	Description string `json:"description,omitempty"`
	Custom      bool   `json:"custom"`
}

// DetectorsResponse is returned by GET /api/v1/detectors.
type DetectorsResponse struct {
	Detectors []DetectorInfo `json:"detectors"`
}

// EntriesResponse is returned by GET /api/v1/entries.
type EntriesResponse struct {
	Entries []database.LogEntry `json:"entries"`
}

// MessageResponse is returned by the demonstration endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
