package probe

import (
	"context"

	"github.com/hamed0406/controlcenter/internal/domain"
)

// Checker performs a single probe against one configured service.
//
// Check never returns an error: every failure mode (refused connection,
// DNS failure, TLS failure, timeout) is captured in the ProbeResult so
// that one flaky service can never abort a surrounding fan-out. The
// per-service timeout from the config is enforced inside Check, layered
// on top of whatever deadline ctx already carries.
type Checker interface {
	Check(ctx context.Context, svc domain.ServiceConfig) domain.ProbeResult
}
