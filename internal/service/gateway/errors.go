package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"pdfsummarizer/internal/session"
)

var (
	// ErrGatewayUnreachable marks connection-level failures (refused,
	// timeout, DNS). Retryable by the caller; never retried here.
	ErrGatewayUnreachable = errors.New("model gateway unreachable")
	// ErrModelNotFound marks a model identifier the gateway does not
	// recognize. A configuration error, not retryable.
	ErrModelNotFound = errors.New("configured model not found on gateway")
)

// Classify maps a raw transport or API error onto the gateway error
// taxonomy. Errors already classified pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrGatewayUnreachable) ||
		errors.Is(err, ErrModelNotFound) ||
		errors.Is(err, session.ErrSessionNotFound) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	}

	// Provider SDKs surface API errors as strings; match the common shapes.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "timed out"):
		return fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	case strings.Contains(msg, "model") &&
		(strings.Contains(msg, "not found") ||
			strings.Contains(msg, "does not exist") ||
			strings.Contains(msg, "404")):
		return fmt.Errorf("%w: %v", ErrModelNotFound, err)
	}
	return err
}
