package catalog

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies why a fetch failed.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrTimeout
	ErrTLS
	ErrDNS
	ErrNetwork
	ErrStatus
	ErrBody
)

// String returns a short identifier for the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrTimeout:
		return "timeout"
	case ErrTLS:
		return "tls"
	case ErrDNS:
		return "dns"
	case ErrNetwork:
		return "network"
	case ErrStatus:
		return "http_status"
	case ErrBody:
		return "body"
	default:
		return "unknown"
	}
}

// HumanMessage returns a one-line hint for the console.
func (k ErrorKind) HumanMessage() string {
	switch k {
	case ErrTimeout:
		return "The catalog did not answer in time. Try again or raise --timeout."
	case ErrTLS:
		return "TLS handshake failed. Drop --strict-tls to accept the certificate."
	case ErrDNS:
		return "The catalog host could not be resolved. Check the URL and your DNS."
	case ErrNetwork:
		return "The catalog is unreachable. Check your internet connection."
	case ErrStatus:
		return "The catalog refused the request."
	case ErrBody:
		return "The catalog response could not be read."
	default:
		return "Unknown error while fetching the catalog."
	}
}

// Error is returned by [Fetcher.Fetch].
type Error struct {
	Kind       ErrorKind
	URL        string
	StatusCode int // Set for ErrStatus.
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == ErrStatus {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the ErrorKind carried by err, or ErrUnknown.
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ErrUnknown
}

// classify maps a transport error from http.Client.Do to an ErrorKind.
func classify(err error) ErrorKind {
	var (
		dnsErr      *net.DNSError
		certErr     *tls.CertificateVerificationError
		unknownAuth x509.UnknownAuthorityError
		hostErr     x509.HostnameError
		invalidErr  x509.CertificateInvalidError
		recordErr   tls.RecordHeaderError
		alertErr    tls.AlertError
		netErr      net.Error
		opErr       *net.OpError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.As(err, &dnsErr):
		return ErrDNS
	case errors.As(err, &certErr), errors.As(err, &unknownAuth), errors.As(err, &hostErr),
		errors.As(err, &invalidErr), errors.As(err, &recordErr), errors.As(err, &alertErr):
		return ErrTLS
	case errors.As(err, &netErr) && netErr.Timeout():
		return ErrTimeout
	case errors.As(err, &opErr):
		return ErrNetwork
	default:
		return ErrUnknown
	}
}
