package attendance

import "errors"

var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn      = errors.New("already checked in today")
	ErrNotCheckedIn          = errors.New("no open check-in record for today")
	ErrAlreadyCheckedOut     = errors.New("already checked out today")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time must be after check-in time")

	// Ledger errors
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrRecordExists   = errors.New("attendance record already exists for this date")
)
