package registry

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/hamed0406/controlcenter/internal/domain"
)

// Defaults fill in the optional per-service fields.
type Defaults struct {
	HealthPath string        // default "/health"
	Method     string        // default GET
	Timeout    time.Duration // per-service probe deadline when unset
}

// Registry is the immutable set of monitored services, in file order.
// It is safe to share across goroutines: nothing mutates it after Load.
type Registry struct {
	entries []domain.ServiceConfig
}

// fileEntry is the YAML shape of one service.
type fileEntry struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"type"`
	URL        string `yaml:"url"`
	HealthPath string `yaml:"health_path"`
	Address    string `yaml:"address"`
	Method     string `yaml:"method"`
	Timeout    string `yaml:"timeout"`
}

type file struct {
	Services []fileEntry `yaml:"services"`
}

// Load reads and validates the registry file. All problems are
// accumulated, so a broken file reports every bad entry at once.
func Load(path string, d Defaults) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}
	r, err := Parse(raw, d)
	if err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return r, nil
}

// Parse builds a Registry from raw YAML.
func Parse(raw []byte, d Defaults) (*Registry, error) {
	if d.HealthPath == "" {
		d.HealthPath = "/health"
	}
	if d.Method == "" {
		d.Method = "GET"
	}
	if d.Timeout <= 0 {
		d.Timeout = 2 * time.Second
	}

	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(f.Services) == 0 {
		return nil, fmt.Errorf("no services configured")
	}

	var errs error
	seen := make(map[string]bool, len(f.Services))
	entries := make([]domain.ServiceConfig, 0, len(f.Services))

	for i, e := range f.Services {
		svc, err := buildEntry(i, e, d)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if seen[svc.Name] {
			errs = multierr.Append(errs, fmt.Errorf("services[%d]: duplicate name %q", i, svc.Name))
			continue
		}
		seen[svc.Name] = true
		entries = append(entries, svc)
	}
	if errs != nil {
		return nil, errs
	}
	return &Registry{entries: entries}, nil
}

func buildEntry(i int, e fileEntry, d Defaults) (domain.ServiceConfig, error) {
	var zero domain.ServiceConfig

	if strings.TrimSpace(e.Name) == "" {
		return zero, fmt.Errorf("services[%d]: missing name", i)
	}

	kind := strings.ToLower(strings.TrimSpace(e.Kind))
	if kind == "" {
		kind = domain.KindHTTP
	}

	timeout := d.Timeout
	if e.Timeout != "" {
		t, err := time.ParseDuration(e.Timeout)
		if err != nil {
			return zero, fmt.Errorf("services[%d] %s: bad timeout %q: %w", i, e.Name, e.Timeout, err)
		}
		if t <= 0 {
			return zero, fmt.Errorf("services[%d] %s: timeout must be positive, got %s", i, e.Name, t)
		}
		timeout = t
	}

	svc := domain.ServiceConfig{
		Name:    e.Name,
		Kind:    kind,
		Timeout: timeout,
	}

	switch kind {
	case domain.KindHTTP:
		if !isValidHTTPURL(e.URL) {
			return zero, fmt.Errorf("services[%d] %s: invalid url %q", i, e.Name, e.URL)
		}
		svc.BaseURL = strings.TrimRight(e.URL, "/")
		svc.HealthPath = e.HealthPath
		if svc.HealthPath == "" {
			svc.HealthPath = d.HealthPath
		}
		if !strings.HasPrefix(svc.HealthPath, "/") {
			svc.HealthPath = "/" + svc.HealthPath
		}
		svc.Method = strings.ToUpper(strings.TrimSpace(e.Method))
		if svc.Method == "" {
			svc.Method = d.Method
		}
		if svc.Method != "GET" && svc.Method != "HEAD" {
			return zero, fmt.Errorf("services[%d] %s: method must be GET or HEAD, got %q", i, e.Name, e.Method)
		}
	case domain.KindTCP:
		host, port, err := net.SplitHostPort(e.Address)
		if err != nil || host == "" || port == "" {
			return zero, fmt.Errorf("services[%d] %s: address must be host:port, got %q", i, e.Name, e.Address)
		}
		svc.Address = e.Address
	default:
		return zero, fmt.Errorf("services[%d] %s: unknown type %q", i, e.Name, e.Kind)
	}

	return svc, nil
}

// Entries returns the configured services in file order. The returned
// slice is a copy; callers cannot reach the registry's backing array.
func (r *Registry) Entries() []domain.ServiceConfig {
	out := make([]domain.ServiceConfig, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) Len() int { return len(r.entries) }

// isValidHTTPURL accepts absolute http(s) URLs with a host.
func isValidHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
