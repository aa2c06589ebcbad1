package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// maxErrorBody caps how much of a response body is echoed in Error strings.
// The full body is always kept on the error value.
const maxErrorBody = 512

// TransportError reports that a request could not be sent or that no
// complete response was received (connection refused, DNS failure, timeout,
// truncated body).
type TransportError struct {
	Op  string // client method, e.g. "search"
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("archivestream %s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a deadline or timeout.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ServerError reports a response with a non-2xx status code.
// Body holds the raw response body; it is never parsed.
type ServerError struct {
	Op         string
	StatusCode int
	Body       []byte
}

func (e *ServerError) Error() string {
	msg := truncateBody(e.Body)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("archivestream %s: server error %d: %s", e.Op, e.StatusCode, msg)
}

// DecodeError reports a 2xx response whose body is not valid JSON.
type DecodeError struct {
	Op   string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("archivestream %s: decoding response: %v (body: %q)", e.Op, e.Err, truncateBody(e.Body))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a ServerError with status 404.
func IsNotFound(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

func truncateBody(b []byte) string {
	if len(b) <= maxErrorBody {
		return string(b)
	}
	return string(b[:maxErrorBody]) + "..."
}
