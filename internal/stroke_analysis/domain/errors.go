package domain

import "errors"

var (
	ErrMissingFile        = errors.New("no video file provided")
	ErrMissingStudentName = errors.New("student name is required")
	ErrInvalidStroke      = errors.New("invalid stroke type")
	ErrRequestFailed      = errors.New("analysis request failed")
	ErrResultNotFound     = errors.New("analysis result not found")
	ErrSubmissionInFlight = errors.New("analysis already in progress")
)
