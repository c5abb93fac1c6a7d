package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInput marks malformed requests: empty filenames, missing metadata
	// fields, or implausible years. Surfaced to callers as a 400.
	ErrInput = errors.New("input error")
	// ErrNotIdentified marks a pipeline that ran to completion without
	// producing a valid record. Surfaced as a 204.
	ErrNotIdentified = errors.New("not identified")
	// ErrPipeline marks a required external step failing mid-pipeline.
	ErrPipeline = errors.New("pipeline error")
	// ErrPersistence marks database failures; these are never swallowed.
	ErrPersistence = errors.New("persistence error")
	// ErrConfiguration marks missing or invalid runtime configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later status classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrPipeline
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
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
