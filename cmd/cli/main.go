package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"
)

// Small operator tool: fetch /status from a running control center and
// print a readable table.

type serviceStatus struct {
	OK         bool    `json:"ok"`
	StatusCode int     `json:"status_code"`
	LatencyMS  float64 `json:"latency_ms"`
	URL        string  `json:"url"`
	Error      string  `json:"error"`
}

type statusBody struct {
	OK          bool                     `json:"ok"`
	GeneratedAt time.Time                `json:"generated_at"`
	Services    map[string]serviceStatus `json:"services"`
}

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(api + "/status")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var body statusBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fmt.Fprintln(os.Stderr, "Bad response:", err)
		os.Exit(1)
	}

	overall := "HEALTHY"
	if !body.OK {
		overall = "DEGRADED"
	}
	fmt.Printf("Overall: %s (generated %s)\n\n", overall, body.GeneratedAt.Format(time.RFC3339))

	// JSON decode loses the server's ordering; sort by name for a
	// stable listing.
	names := make([]string, 0, len(body.Services))
	for n := range body.Services {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		s := body.Services[n]
		state := "OK  "
		if !s.OK {
			state = "DOWN"
		}
		code := "-"
		if s.StatusCode != 0 {
			code = fmt.Sprintf("%d", s.StatusCode)
		}
		line := fmt.Sprintf("%s  %-20s %4s  %7.0fms  %s", state, n, code, s.LatencyMS, s.URL)
		if s.Error != "" {
			line += "  [" + s.Error + "]"
		}
		fmt.Println(line)
	}

	if !body.OK {
		os.Exit(2)
	}
}
