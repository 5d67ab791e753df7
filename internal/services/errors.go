package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks a source file that vanished before it could be read.
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedType marks a file extension with no extraction handler.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrEmptyContent marks an extraction that yielded no usable text.
	ErrEmptyContent = errors.New("empty content")
	// ErrMalformedResponse marks model output that could not be parsed.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrMissingField marks model output lacking a required field.
	ErrMissingField = errors.New("missing field")
	// ErrService marks an unreachable, erroring, or timed-out remote call.
	ErrService = errors.New("service error")
	// ErrPlacement marks a move that could not complete.
	ErrPlacement = errors.New("placement failure")
	// ErrAuditWrite marks an audit record that could not be persisted.
	ErrAuditWrite = errors.New("audit write failure")
)

// Wrap builds an error message that includes step context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, step, operation, message string, err error) error {
	detail := buildDetail(step, operation, message)
	if marker == nil {
		marker = ErrService
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// MissingField reports a required field absent from the model response.
func MissingField(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, name)
}

// IsQuarantine reports whether err routes a file to a quarantine category
// rather than failing its pipeline run.
func IsQuarantine(err error) bool {
	return errors.Is(err, ErrUnsupportedType) || errors.Is(err, ErrEmptyContent)
}

func buildDetail(step, operation, message string) string {
	parts := make([]string, 0, 3)
	if step = strings.TrimSpace(step); step != "" {
		parts = append(parts, step)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
