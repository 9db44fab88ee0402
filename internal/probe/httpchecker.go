package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/hamed0406/controlcenter/internal/domain"
)

// healthy is the health-positive range: any non-error status counts.
func healthy(code int) bool {
	return code >= 200 && code < 400
}

type HTTPChecker struct {
	Client *http.Client
}

func NewHTTPChecker() *HTTPChecker {
	// No client-level timeout: each Check carries its own deadline via
	// context, so one client is shared by probes with different budgets.
	return &HTTPChecker{Client: &http.Client{}}
}

func (h *HTTPChecker) Check(ctx context.Context, svc domain.ServiceConfig) domain.ProbeResult {
	target := svc.Target()
	res := domain.ProbeResult{ServiceName: svc.Name, URL: target}

	cctx, cancel := context.WithTimeout(ctx, svc.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := h.do(cctx, svc.Method, target)
	res.LatencyMS = float64(time.Since(start)) / float64(time.Millisecond)

	if err != nil {
		res.Error = Classify(err)
		if res.Error == domain.ErrTimeout {
			// Report the configured budget, not the measured elapsed,
			// so graphs show a stable ceiling for timed-out probes.
			res.LatencyMS = float64(svc.Timeout) / float64(time.Millisecond)
		}
		return res
	}
	defer resp.Body.Close()

	res.Reachable = true
	res.StatusCode = resp.StatusCode
	res.OK = healthy(resp.StatusCode)
	return res
}

// do issues the request; a HEAD refused with 405 is retried as GET,
// since plenty of health endpoints only implement GET.
func (h *HTTPChecker) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if method == http.MethodHead && resp.StatusCode == http.StatusMethodNotAllowed {
		resp.Body.Close()
		req2, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		return h.Client.Do(req2)
	}
	return resp, nil
}
