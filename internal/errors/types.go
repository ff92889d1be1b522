// Package errors defines the failure taxonomy shared by the codec, scorer,
// analysis client and report server.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDecodeFailure marks a malformed, corrupt or tampered token.
	ErrDecodeFailure = errors.New("invalid code")
	// ErrEmptyCatalog is returned when a scenario has no questions to score against.
	ErrEmptyCatalog = errors.New("question catalog is empty")
	// ErrVendorConfiguration means the server has no credentials for the report vendor.
	ErrVendorConfiguration = errors.New("MISSING_API_KEY")
)

// ScenarioMismatchError is returned when two profiles come from different questionnaires
type ScenarioMismatchError struct {
	HostLabel  string
	GuestLabel string
}

func (e *ScenarioMismatchError) Error() string {
	return fmt.Sprintf("scenario mismatch: host took the %s, guest took the %s", e.HostLabel, e.GuestLabel)
}

// CatalogLengthMismatchError is returned when an answer vector does not fit the
// scenario's catalog, usually stale data from before a catalog change.
type CatalogLengthMismatchError struct {
	Side     string
	Scenario string
	Expected int
	Got      int
}

func (e *CatalogLengthMismatchError) Error() string {
	return fmt.Sprintf("%s profile has %d answers but the %s catalog has %d questions; please retake the questionnaire",
		e.Side, e.Got, e.Scenario, e.Expected)
}

// TransientError is a failure worth retrying: timeouts, transport errors, 429 and 5xx gateway codes
type TransientError struct {
	StatusCode int
	Err        error
}

func (e *TransientError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transient error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transient error: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// PermanentError is a failure that must not be retried
type PermanentError struct {
	StatusCode int
	Err        error
}

func (e *PermanentError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("permanent error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("permanent error: %v", e.Err)
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// RetryableStatus reports whether an HTTP status code is transient.
func RetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// FromStatus classifies a non-2xx HTTP response.
func FromStatus(code int, body string) error {
	err := fmt.Errorf("%d %s: %s", code, http.StatusText(code), body)
	if RetryableStatus(code) {
		return &TransientError{StatusCode: code, Err: err}
	}
	return &PermanentError{StatusCode: code, Err: err}
}

// IsTransient checks if an error is retry-able
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// IsScenarioMismatch reports whether err is a ScenarioMismatchError.
func IsScenarioMismatch(err error) bool {
	var mismatch *ScenarioMismatchError
	return errors.As(err, &mismatch)
}

// IsCatalogLengthMismatch reports whether err is a CatalogLengthMismatchError.
func IsCatalogLengthMismatch(err error) bool {
	var mismatch *CatalogLengthMismatchError
	return errors.As(err, &mismatch)
}
