package probe

import (
	"context"
	"net"
	"time"

	"github.com/hamed0406/controlcenter/internal/domain"
)

// TCPChecker verifies that a host:port accepts connections. Used for
// services with no HTTP surface (databases, caches).
type TCPChecker struct {
	Dialer net.Dialer
}

func NewTCPChecker() *TCPChecker {
	return &TCPChecker{}
}

func (t *TCPChecker) Check(ctx context.Context, svc domain.ServiceConfig) domain.ProbeResult {
	res := domain.ProbeResult{ServiceName: svc.Name, URL: svc.Address}

	cctx, cancel := context.WithTimeout(ctx, svc.Timeout)
	defer cancel()

	start := time.Now()
	conn, err := t.Dialer.DialContext(cctx, "tcp", svc.Address)
	res.LatencyMS = float64(time.Since(start)) / float64(time.Millisecond)

	if err != nil {
		res.Error = Classify(err)
		if res.Error == domain.ErrTimeout {
			res.LatencyMS = float64(svc.Timeout) / float64(time.Millisecond)
		}
		return res
	}
	conn.Close()

	res.Reachable = true
	res.OK = true
	return res
}
