package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"syscall"

	"github.com/hamed0406/controlcenter/internal/domain"
)

// Classify maps a transport error onto one of the probe error classes.
// The order matters: a DNS lookup failure also satisfies net.Error, so
// the more specific checks run first.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return domain.ErrTimeout
		}
		return domain.ErrDNSFailure
	}

	if isTLSError(err) {
		return domain.ErrTLSError
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return domain.ErrConnectionRefused
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.ErrTimeout
	}

	return domain.ErrUnknownTransport
}

func isTLSError(err error) bool {
	var (
		recordErr   tls.RecordHeaderError
		verifyErr   *tls.CertificateVerificationError
		hostErr     x509.HostnameError
		authErr     x509.UnknownAuthorityError
		certInvalid x509.CertificateInvalidError
	)
	return errors.As(err, &recordErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &authErr) ||
		errors.As(err, &certInvalid)
}
