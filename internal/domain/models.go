package domain

import "time"

// Probe kinds. HTTP checks hit a health endpoint; TCP checks only
// verify that something accepts a connection (used for databases that
// expose no HTTP surface).
const (
	KindHTTP = "http"
	KindTCP  = "tcp"
)

// ServiceConfig describes one monitored service. Instances are built by
// the registry at load time and never mutated afterwards.
type ServiceConfig struct {
	Name       string        `json:"name"`
	Kind       string        `json:"kind"`
	BaseURL    string        `json:"url,omitempty"`     // http kind
	HealthPath string        `json:"path,omitempty"`    // appended to BaseURL
	Address    string        `json:"address,omitempty"` // tcp kind, host:port
	Method     string        `json:"method,omitempty"`  // GET or HEAD
	Timeout    time.Duration `json:"timeout"`
}

// Target returns the resolved probe target: full URL for http checks,
// host:port for tcp checks.
func (s ServiceConfig) Target() string {
	if s.Kind == KindTCP {
		return s.Address
	}
	return s.BaseURL + s.HealthPath
}
