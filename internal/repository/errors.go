// Package repository defines error values shared across the data
// access layer.  Sentinel errors let handlers translate failures into
// HTTP codes with errors.Is instead of inspecting driver errors, and
// keep "row absent" distinct from "query failed" so callers never have
// to overload an empty result with both meanings.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate it to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict signals that an operation cannot proceed because of
// conflicting state, e.g. assigning the same user twice in the same
// role on one booking.  Handlers translate it to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned by user creation when the email is taken.
var ErrEmailExists = errors.New("email already exists")

// Not-found sentinels, one per aggregate the workflow resolves by ID.
// The contract orchestrator treats several of these as fatal
// configuration errors rather than recoverable user input.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInstrumentNotFound = errors.New("instrument not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrContractNotFound   = errors.New("contract not found")
	ErrSignatureNotFound  = errors.New("signature record not found")
	ErrRateNotFound       = errors.New("rate record not found")
	ErrSuperadminNotFound = errors.New("superadmin user not found")
)
