package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/controlcenter/internal/aggregate"
	"github.com/hamed0406/controlcenter/internal/registry"
)

func testServer(t *testing.T, regYAML string) *Server {
	t.Helper()
	reg, err := registry.Parse([]byte(regYAML), registry.Defaults{Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	agg := aggregate.New(zap.NewNop(), 2*time.Second, 0)
	return NewServer(zap.NewNop(), reg, agg, "control-center", "0.1.0")
}

func upstream(t *testing.T, code int) *httptest.Server {
	t.Helper()
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}))
	t.Cleanup(s.Close)
	return s
}

func TestHealth_ConstantShapeNoDownstream(t *testing.T) {
	// registry points at a dead address; /health must not care
	srv := testServer(t, `
services:
  - {name: dead, url: "http://127.0.0.1:1", health_path: /}
`)

	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	if rr.Code != 200 {
		t.Fatalf("want 200, got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["ok"] != true || body["service"] != "control-center" || body["version"] != "0.1.0" {
		t.Fatalf("health shape wrong: %v", body)
	}
}

func TestStatus_AllUp(t *testing.T) {
	up := upstream(t, 200)
	srv := testServer(t, fmt.Sprintf(`
services:
  - {name: api, url: %s, health_path: /}
`, up.URL))

	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest("GET", "/status", nil))

	if rr.Code != 200 {
		t.Fatalf("want 200, got %d", rr.Code)
	}
	var body struct {
		OK          bool      `json:"ok"`
		GeneratedAt time.Time `json:"generated_at"`
		Services    map[string]struct {
			OK         bool    `json:"ok"`
			StatusCode int     `json:"status_code"`
			LatencyMS  float64 `json:"latency_ms"`
			URL        string  `json:"url"`
			Error      string  `json:"error"`
		} `json:"services"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.OK {
		t.Fatalf("want ok=true, body=%s", rr.Body.String())
	}
	if body.GeneratedAt.IsZero() {
		t.Fatal("generated_at missing")
	}
	api, found := body.Services["api"]
	if !found {
		t.Fatalf("service api missing: %s", rr.Body.String())
	}
	if !api.OK || api.StatusCode != 200 || api.URL != up.URL+"/" {
		t.Fatalf("api entry wrong: %+v", api)
	}
	if api.Error != "" {
		t.Fatalf("healthy entry must omit error, got %q", api.Error)
	}
}

func TestStatus_DownstreamFailureStillHTTP200(t *testing.T) {
	down := upstream(t, 503)
	srv := testServer(t, fmt.Sprintf(`
services:
  - {name: broken, url: %s, health_path: /}
`, down.URL))

	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest("GET", "/status", nil))

	// the endpoint reflects transport success, never downstream health
	if rr.Code != 200 {
		t.Fatalf("status endpoint must answer 200, got %d", rr.Code)
	}
	var body struct {
		OK       bool `json:"ok"`
		Services map[string]struct {
			OK         bool `json:"ok"`
			StatusCode int  `json:"status_code"`
		} `json:"services"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("body must stay parseable: %v", err)
	}
	if body.OK {
		t.Fatal("want ok=false in body")
	}
	if b := body.Services["broken"]; b.OK || b.StatusCode != 503 {
		t.Fatalf("broken entry wrong: %+v", b)
	}
}

func TestStatus_UnreachableServiceFullyReported(t *testing.T) {
	srv := testServer(t, `
services:
  - {name: gone, url: "http://127.0.0.1:1", health_path: /}
`)

	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest("GET", "/status", nil))

	var body struct {
		OK       bool `json:"ok"`
		Services map[string]struct {
			OK        bool    `json:"ok"`
			LatencyMS float64 `json:"latency_ms"`
			Error     string  `json:"error"`
		} `json:"services"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	g, found := body.Services["gone"]
	if !found {
		t.Fatal("unreachable service omitted from results")
	}
	if g.OK || g.Error == "" {
		t.Fatalf("gone entry wrong: %+v", g)
	}
}

func TestServices_ListsRegistryWithoutProbing(t *testing.T) {
	srv := testServer(t, `
services:
  - {name: web, url: "http://127.0.0.1:1", timeout: 3s}
  - {name: db, type: tcp, address: "127.0.0.1:3306"}
`)

	start := time.Now()
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest("GET", "/services", nil))

	// no probing: even with a dead target this returns immediately
	if took := time.Since(start); took > 500*time.Millisecond {
		t.Fatalf("/services appears to probe, took %s", took)
	}
	var body struct {
		Services []serviceInfo `json:"services"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Services) != 2 {
		t.Fatalf("want 2 services, got %+v", body.Services)
	}
	if body.Services[0].Name != "web" || body.Services[0].TimeoutMS != 3000 {
		t.Fatalf("web wrong: %+v", body.Services[0])
	}
	if body.Services[1].Kind != "tcp" || body.Services[1].Target != "127.0.0.1:3306" {
		t.Fatalf("db wrong: %+v", body.Services[1])
	}
}

func TestDashboard_RendersHTML(t *testing.T) {
	up := upstream(t, 200)
	srv := testServer(t, fmt.Sprintf(`
services:
  - {name: api, url: %s, health_path: /}
`, up.URL))

	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest("GET", "/dashboard", nil))

	if rr.Code != 200 {
		t.Fatalf("want 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("content type wrong: %q", ct)
	}
	html := rr.Body.String()
	for _, want := range []string{"HEALTHY", "api", "/status"} {
		if !strings.Contains(html, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
}
