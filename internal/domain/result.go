package domain

import "time"

// Probe error classes. Every unreachable result carries exactly one.
const (
	ErrTimeout           = "timeout"
	ErrConnectionRefused = "connection-refused"
	ErrDNSFailure        = "dns-failure"
	ErrTLSError          = "tls-error"
	ErrUnknownTransport  = "unknown-transport-error"
	ErrGlobalDeadline    = "global-deadline-exceeded"
)

// ProbeResult is the outcome of a single check. Created by one checker
// invocation, immutable afterwards.
//
// StatusCode is 0 when no HTTP response was received (transport error,
// timeout, or a tcp-kind check). Error is set iff Reachable is false.
// LatencyMS is always populated, even on failure, so dashboards can
// graph it without gaps.
type ProbeResult struct {
	ServiceName string  `json:"name"`
	Reachable   bool    `json:"reachable"`
	OK          bool    `json:"ok"`
	StatusCode  int     `json:"status_code,omitempty"`
	LatencyMS   float64 `json:"latency_ms"`
	URL         string  `json:"url"`
	Error       string  `json:"error,omitempty"`
}

// Snapshot is one complete point-in-time view of the fleet. Results
// holds exactly one entry per configured service, in registry order,
// regardless of which probes succeeded.
type Snapshot struct {
	OverallOK   bool
	Results     []ProbeResult
	GeneratedAt time.Time
}
