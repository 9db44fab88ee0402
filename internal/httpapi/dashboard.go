package httpapi

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; padding: 20px; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
    th { background: #f5f5f5; }
    .up { color: #1a7f37; font-weight: bold; }
    .down { color: #cf222e; font-weight: bold; }
  </style>
</head>
<body>
  <h2>{{.Title}}</h2>
  <p><b>Overall:</b> <span class="{{if .OverallOK}}up{{else}}down{{end}}">{{if .OverallOK}}HEALTHY{{else}}DEGRADED{{end}}</span></p>
  <p><b>Generated (UTC):</b> {{.GeneratedAt}}</p>
  <table>
    <thead>
      <tr><th>Service</th><th>Target</th><th>Status</th><th>HTTP</th><th>Latency</th><th>Error</th></tr>
    </thead>
    <tbody>
      {{range .Rows}}
      <tr>
        <td>{{.Name}}</td>
        <td><code>{{.Target}}</code></td>
        <td class="{{if .OK}}up{{else}}down{{end}}">{{if .OK}}OK{{else}}DOWN{{end}}</td>
        <td>{{.HTTP}}</td>
        <td>{{.Latency}}</td>
        <td><code>{{.Error}}</code></td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <p>JSON: <a href="/status">/status</a> | <a href="/services">/services</a></p>
</body>
</html>
`))

type dashboardRow struct {
	Name    string
	Target  string
	OK      bool
	HTTP    string
	Latency string
	Error   string
}

type dashboardData struct {
	Title       string
	OverallOK   bool
	GeneratedAt string
	Rows        []dashboardRow
}

// handleDashboard renders a fresh snapshot as a minimal HTML table.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap := s.Aggregator.Snapshot(r.Context(), s.Registry)

	data := dashboardData{
		Title:       s.ServiceName,
		OverallOK:   snap.OverallOK,
		GeneratedAt: snap.GeneratedAt.Format(time.RFC3339),
	}
	for _, res := range snap.Results {
		httpTxt := "n/a"
		if res.StatusCode != 0 {
			httpTxt = fmt.Sprintf("%d", res.StatusCode)
		}
		data.Rows = append(data.Rows, dashboardRow{
			Name:    res.ServiceName,
			Target:  res.URL,
			OK:      res.OK,
			HTTP:    httpTxt,
			Latency: fmt.Sprintf("%.0f ms", res.LatencyMS),
			Error:   res.Error,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		s.Logger.Warn("dashboard_render_error", zap.Error(err))
	}
}
