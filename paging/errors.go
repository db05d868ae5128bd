package paging

import (
	"errors"
	"fmt"
)

// ErrorCode represents different types of simulation errors
type ErrorCode int

const (
	// Generic errors
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInternal

	// Configuration errors, reported before a run starts
	ErrCodeInvalidCapacity
	ErrCodeInvalidPolicy
	ErrCodeUnknownAlgorithm
	ErrCodeEmptyStream
	ErrCodeInvalidPage
	ErrCodeStreamTooLong
	ErrCodeInvalidRange

	// Invariant violations, abort the run
	ErrCodeNoVictim
	ErrCodeInvalidSlot
	ErrCodePageOutOfDomain
)

// NoPosition is used for errors not tied to a stream position
const NoPosition = -1

// SimulationError represents a simulation error with context
type SimulationError struct {
	Code     ErrorCode
	Message  string
	Op       string   // Operation that failed
	Position int      // Stream position, or NoPosition
	Frames   []PageID // Frame contents when the error occurred (if any)
	Err      error    // Underlying error (if any)
}

// Error implements the error interface
func (e *SimulationError) Error() string {
	msg := e.Message
	if e.Position != NoPosition {
		msg = fmt.Sprintf("%s (position %d", msg, e.Position)
		if e.Frames != nil {
			msg = fmt.Sprintf("%s, frames %v", msg, e.Frames)
		}
		msg += ")"
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *SimulationError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a specific error code
func (e *SimulationError) Is(target error) bool {
	if t, ok := target.(*SimulationError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewSimulationError creates a new simulation error without position context
func NewSimulationError(code ErrorCode, op, message string, err error) *SimulationError {
	return &SimulationError{
		Code:     code,
		Message:  message,
		Op:       op,
		Position: NoPosition,
		Err:      err,
	}
}

// Helper functions for common errors

func ErrInvalidCapacity(op string, capacity int) *SimulationError {
	return NewSimulationError(
		ErrCodeInvalidCapacity,
		op,
		fmt.Sprintf("frame capacity must be positive, got %d", capacity),
		nil,
	)
}

func ErrInvalidPolicy(op string) *SimulationError {
	return NewSimulationError(
		ErrCodeInvalidPolicy,
		op,
		"no replacement policy given",
		nil,
	)
}

func ErrUnknownAlgorithm(op string, algorithm Algorithm) *SimulationError {
	return NewSimulationError(
		ErrCodeUnknownAlgorithm,
		op,
		fmt.Sprintf("unknown replacement algorithm %q", string(algorithm)),
		nil,
	)
}

func ErrEmptyStream(op string) *SimulationError {
	return NewSimulationError(
		ErrCodeEmptyStream,
		op,
		"reference stream is empty",
		nil,
	)
}

func ErrInvalidPage(op string, index int, page, maxPage PageID) *SimulationError {
	return NewSimulationError(
		ErrCodeInvalidPage,
		op,
		fmt.Sprintf("page %d at index %d outside [1, %d]", page, index, maxPage),
		nil,
	)
}

func ErrStreamTooLong(op string, length, limit int) *SimulationError {
	return NewSimulationError(
		ErrCodeStreamTooLong,
		op,
		fmt.Sprintf("reference stream has %d entries, limit is %d", length, limit),
		nil,
	)
}

func ErrInvalidRange(op string, minFrames, maxFrames int) *SimulationError {
	return NewSimulationError(
		ErrCodeInvalidRange,
		op,
		fmt.Sprintf("invalid frame range [%d, %d]", minFrames, maxFrames),
		nil,
	)
}

func ErrNoVictim(op string, position int, frames []PageID) *SimulationError {
	return &SimulationError{
		Code:     ErrCodeNoVictim,
		Op:       op,
		Message:  "no eviction candidate in a full frame table",
		Position: position,
		Frames:   frames,
	}
}

func ErrInvalidSlot(op string, position, slot int, frames []PageID) *SimulationError {
	return &SimulationError{
		Code:     ErrCodeInvalidSlot,
		Op:       op,
		Message:  fmt.Sprintf("victim slot %d is not an occupied frame", slot),
		Position: position,
		Frames:   frames,
	}
}

func ErrPageOutOfDomain(op string, position int, page, maxPage PageID) *SimulationError {
	return &SimulationError{
		Code:     ErrCodePageOutOfDomain,
		Op:       op,
		Message:  fmt.Sprintf("page %d outside [1, %d]", page, maxPage),
		Position: position,
	}
}

// IsErrorCode checks if an error chain carries a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// GetErrorCode returns the error code from an error chain, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	var se *SimulationError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeUnknown
}

// IsConfigurationError reports errors raised before a run starts
func IsConfigurationError(err error) bool {
	code := GetErrorCode(err)
	return code >= ErrCodeInvalidCapacity && code <= ErrCodeInvalidRange
}

// IsInvariantViolation reports errors that aborted a run midway
func IsInvariantViolation(err error) bool {
	code := GetErrorCode(err)
	return code >= ErrCodeNoVictim && code <= ErrCodePageOutOfDomain
}
