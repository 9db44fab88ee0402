package domain

import (
	"testing"
	"time"
)

func TestServiceConfig_Target(t *testing.T) {
	httpSvc := ServiceConfig{
		Name:       "api",
		Kind:       KindHTTP,
		BaseURL:    "http://127.0.0.1:8081",
		HealthPath: "/health",
		Timeout:    2 * time.Second,
	}
	if got := httpSvc.Target(); got != "http://127.0.0.1:8081/health" {
		t.Fatalf("http target wrong: %q", got)
	}

	tcpSvc := ServiceConfig{
		Name:    "mysql",
		Kind:    KindTCP,
		Address: "127.0.0.1:3306",
	}
	if got := tcpSvc.Target(); got != "127.0.0.1:3306" {
		t.Fatalf("tcp target wrong: %q", got)
	}
}
