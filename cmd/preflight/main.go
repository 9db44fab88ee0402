// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"

	"github.com/hamed0406/controlcenter/internal/config"
	"github.com/hamed0406/controlcenter/internal/registry"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.FromEnv()
	if err != nil {
		fail(fmt.Sprintf("environment config invalid: %v", err))
	}
	ok(fmt.Sprintf("env config ok (addr=%s, probe=%s, total=%s)", cfg.Addr, cfg.ProbeTimeout, cfg.TotalTimeout))

	if cfg.TotalTimeout < cfg.ProbeTimeout {
		warn(fmt.Sprintf("total timeout %s is shorter than default probe timeout %s; slow probes will report global-deadline-exceeded", cfg.TotalTimeout, cfg.ProbeTimeout))
	}

	reg, err := registry.Load(cfg.RegistryPath, registry.Defaults{Timeout: cfg.ProbeTimeout})
	if err != nil {
		fail(fmt.Sprintf("registry invalid: %v", err))
	}
	ok(fmt.Sprintf("registry ok (%d services from %s)", reg.Len(), cfg.RegistryPath))

	for _, svc := range reg.Entries() {
		if svc.Timeout > cfg.TotalTimeout {
			warn(fmt.Sprintf("service %q timeout %s exceeds total timeout %s", svc.Name, svc.Timeout, cfg.TotalTimeout))
		}
		ok(fmt.Sprintf("service %-20s %-4s %s (timeout %s)", svc.Name, svc.Kind, svc.Target(), svc.Timeout))
	}

	fmt.Println("preflight passed")
}
