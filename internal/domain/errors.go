package domain

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")
)

var (
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")
	ErrDatesConflict    = errors.New("listing is not available for these dates")
	ErrTooManyGuests    = errors.New("guest count exceeds listing capacity")
	ErrNotOwner         = errors.New("caller does not own this resource")
	ErrStatusTransition = errors.New("status transition not allowed")
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
