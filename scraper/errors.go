package scraper

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"syscall"
)

// ErrNoRecipeFound is reported when every extraction tier came back empty.
var ErrNoRecipeFound = errors.New("no recipe found")

// ErrInvalidURL indicates a URL with an unsupported scheme or no host.
type ErrInvalidURL struct {
	URL    string
	Reason string
}

func (e ErrInvalidURL) Error() string {
	return fmt.Sprintf("invalid url %q: %s", e.URL, e.Reason)
}

// ErrTimeout indicates a timeout while issuing a request.
type ErrTimeout struct {
	Err error
}

func (e ErrTimeout) Error() string {
	return fmt.Errorf("timeout: %w", e.Err).Error()
}

func (e ErrTimeout) Unwrap() error {
	return e.Err
}

// ErrConnection indicates a network connectivity failure.
type ErrConnection struct {
	Err error
}

func (e ErrConnection) Error() string {
	return fmt.Errorf("connection: %w", e.Err).Error()
}

func (e ErrConnection) Unwrap() error {
	return e.Err
}

// ErrHTTPStatus indicates a non-2xx response.
type ErrHTTPStatus struct {
	Code int
}

func (e ErrHTTPStatus) Error() string {
	return fmt.Sprintf("http status %d %s", e.Code, http.StatusText(e.Code))
}

func errorTypeLabel(err error) string {
	if err == nil {
		return "unknown"
	}
	var invalid ErrInvalidURL
	if errors.As(err, &invalid) {
		return "invalid_url"
	}
	var timeout ErrTimeout
	if errors.As(err, &timeout) {
		return "timeout"
	}
	var conn ErrConnection
	if errors.As(err, &conn) {
		return "unreachable"
	}
	var status ErrHTTPStatus
	if errors.As(err, &status) {
		return "http_error"
	}
	if errors.Is(err, ErrNoRecipeFound) {
		return "no_recipe"
	}
	return "other"
}

// failureReason renders err as the reason string carried by a failed outcome.
func failureReason(err error) string {
	var status ErrHTTPStatus
	switch {
	case errors.As(err, &status):
		return fmt.Sprintf("HTTP error %d", status.Code)
	case errors.Is(err, ErrNoRecipeFound):
		return "NoRecipeFound"
	}

	switch errorTypeLabel(err) {
	case "invalid_url":
		return "invalid URL"
	case "timeout":
		return "timeout"
	case "unreachable":
		return "unreachable"
	}
	return "fetch failed"
}

// retryable reports whether a batch caller should try err again.
func retryable(err error) bool {
	var timeout ErrTimeout
	var conn ErrConnection
	return errors.As(err, &timeout) || errors.As(err, &conn)
}

// connectionFailure reports TLS handshake failures and connections dropped
// by the peer, which surface without a *net.OpError in the chain.
func connectionFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	var certErr *tls.CertificateVerificationError
	var recordErr tls.RecordHeaderError
	var authorityErr x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var invalidErr x509.CertificateInvalidError
	return errors.As(err, &certErr) ||
		errors.As(err, &recordErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}
