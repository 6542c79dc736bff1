package models

import (
	"errors"
	"fmt"
)

var ErrUserNotFound = errors.New("user not found")

// DirectoryFetchError reports a failed user directory download.
type DirectoryFetchError struct {
	StatusCode int
	Err        error
}

func (e *DirectoryFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to load users: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to load users: %v", e.Err)
}

func (e *DirectoryFetchError) Unwrap() error { return e.Err }

// MetricFetchError reports a failed metric download for one user.
type MetricFetchError struct {
	Metric     string
	UserID     int
	StatusCode int
	Err        error
}

func (e *MetricFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to download %s for user %d: status %d: %v", e.Metric, e.UserID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to download %s for user %d: %v", e.Metric, e.UserID, e.Err)
}

func (e *MetricFetchError) Unwrap() error { return e.Err }

// MalformedPayloadError is returned when a payload does not have the shape
// its schema expects. Row is the offending data row, or -1 when the whole
// payload is at fault.
type MalformedPayloadError struct {
	Row    int
	Reason string
	Err    error
}

func (e *MalformedPayloadError) Error() string {
	msg := "malformed payload"
	if e.Row >= 0 {
		msg = fmt.Sprintf("malformed payload at row %d", e.Row)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }
