package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/controlcenter/internal/aggregate"
	"github.com/hamed0406/controlcenter/internal/config"
	"github.com/hamed0406/controlcenter/internal/httpapi"
	"github.com/hamed0406/controlcenter/internal/logging"
	"github.com/hamed0406/controlcenter/internal/registry"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// The registry is loaded exactly once; a bad file refuses startup
	// rather than running with an inconsistent view. Reloading means
	// restarting the process.
	reg, err := registry.Load(cfg.RegistryPath, registry.Defaults{
		Timeout: cfg.ProbeTimeout,
	})
	if err != nil {
		log.Fatalf("registry: %v", err)
	}

	agg := aggregate.New(logger, cfg.TotalTimeout, cfg.MaxConcurrentChecks)

	api := httpapi.NewServer(logger, reg, agg, cfg.ServiceName, cfg.Version)
	api.RPM = cfg.StatusRPM
	api.Burst = cfg.StatusBurst

	logger.Info("api_listen",
		zap.String("addr", cfg.Addr),
		zap.Int("services", reg.Len()),
	)
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
