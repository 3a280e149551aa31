package domain

import "errors"

var (
	// ErrMissingRequiredField is returned when a record lacks its Title.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrInvalidTimestampFormat is returned when start_time or end_time is
	// not "YYYY-MM-DD HH:MM".
	ErrInvalidTimestampFormat = errors.New("invalid timestamp format")
	// ErrFileWrite is returned when the local archive cannot be written.
	ErrFileWrite = errors.New("failed to write archive")
	// ErrUpload is returned when the remote row could not be created.
	ErrUpload = errors.New("failed to upload row")
)
