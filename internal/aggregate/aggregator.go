package aggregate

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/controlcenter/internal/domain"
	"github.com/hamed0406/controlcenter/internal/probe"
	"github.com/hamed0406/controlcenter/internal/registry"
)

// Aggregator fans out one probe per configured service and assembles
// the results into a Snapshot. It holds no per-request state; a single
// Aggregator serves concurrent requests.
type Aggregator struct {
	Logger *zap.Logger
	HTTP   probe.Checker
	TCP    probe.Checker

	// GlobalTimeout bounds one whole Snapshot call. Probes still in
	// flight when it fires are cancelled and recorded as
	// global-deadline-exceeded, never dropped.
	GlobalTimeout time.Duration

	// MaxParallel caps concurrent probes; 0 means one goroutine per
	// service. The registry is operator-controlled and small, so
	// unlimited is the normal mode.
	MaxParallel int
}

func New(logger *zap.Logger, globalTimeout time.Duration, maxParallel int) *Aggregator {
	if globalTimeout <= 0 {
		globalTimeout = 4 * time.Second
	}
	if maxParallel < 0 {
		maxParallel = 0
	}
	return &Aggregator{
		Logger:        logger,
		HTTP:          probe.NewHTTPChecker(),
		TCP:           probe.NewTCPChecker(),
		GlobalTimeout: globalTimeout,
		MaxParallel:   maxParallel,
	}
}

// Snapshot probes every registry entry concurrently and waits for all
// of them to reach a terminal state before returning. Results keep
// registry order regardless of completion order, so output is stable
// across runs. The registry is validated non-empty at load time, so
// aggregation never runs over an empty set.
func (a *Aggregator) Snapshot(ctx context.Context, reg *registry.Registry) domain.Snapshot {
	entries := reg.Entries()
	results := make([]domain.ProbeResult, len(entries))

	rctx, cancel := context.WithTimeout(ctx, a.GlobalTimeout)
	defer cancel()

	var g errgroup.Group
	if a.MaxParallel > 0 {
		g.SetLimit(a.MaxParallel)
	}

	for i, svc := range entries {
		i, svc := i, svc
		g.Go(func() error {
			start := time.Now()
			res := a.checkerFor(svc.Kind).Check(rctx, svc)

			// A probe cut short because the request-wide deadline
			// expired is reported distinctly from a per-service
			// timeout, with the elapsed time actually spent.
			if res.Error == domain.ErrTimeout && rctx.Err() != nil {
				res.Error = domain.ErrGlobalDeadline
				res.LatencyMS = float64(time.Since(start)) / float64(time.Millisecond)
			}

			results[i] = res
			return nil
		})
	}
	_ = g.Wait() // probes never fail; Wait is purely the barrier

	overall := true
	for _, r := range results {
		if !r.OK {
			overall = false
			break
		}
	}

	snap := domain.Snapshot{
		OverallOK:   overall,
		Results:     results,
		GeneratedAt: time.Now().UTC(),
	}

	if a.Logger != nil {
		a.Logger.Info("aggregate_done",
			zap.Bool("ok", overall),
			zap.Int("services", len(results)),
		)
	}
	return snap
}

func (a *Aggregator) checkerFor(kind string) probe.Checker {
	if kind == domain.KindTCP {
		return a.TCP
	}
	return a.HTTP
}
