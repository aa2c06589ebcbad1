package tools

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/usestring/archivestream-mcp/pkg/client"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeArchiveError = "ARCHIVE_ERROR"
	ErrCodeDecodeError  = "DECODE_ERROR"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeUnavailable  = "UNAVAILABLE"
	ErrCodeInvalidInput = "INVALID_INPUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapArchiveError converts a client error into a coded error.
func WrapArchiveError(err error) error {
	if err == nil {
		return nil
	}

	var (
		serverErr    *client.ServerError
		decodeErr    *client.DecodeError
		transportErr *client.TransportError
		coded        *CodedError
	)
	switch {
	case errors.As(err, &coded):
		return err
	case errors.As(err, &serverErr):
		code := ErrCodeArchiveError
		if serverErr.StatusCode == http.StatusNotFound {
			code = ErrCodeNotFound
		}
		coded = &CodedError{
			Code:    code,
			Message: fmt.Sprintf("archive returned %d", serverErr.StatusCode),
			Cause:   err,
		}
	case errors.As(err, &decodeErr):
		coded = &CodedError{Code: ErrCodeDecodeError, Message: "archive returned a non-JSON body", Cause: err}
	case errors.As(err, &transportErr) && transportErr.Timeout():
		coded = &CodedError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	case errors.As(err, &transportErr):
		coded = &CodedError{Code: ErrCodeUnavailable, Message: "archive unreachable", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeArchiveError, Message: "request failed", Cause: err}
	}

	slog.Warn("archive API error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

func errDecode(err error) error {
	return &CodedError{Code: ErrCodeDecodeError, Message: "decoding archive record", Cause: err}
}

// requireField returns an invalid input error when value is empty.
func requireField(name, value string) error {
	if value == "" {
		return ErrInvalidInput(name + " is required")
	}
	return nil
}
