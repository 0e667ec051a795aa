package service

import (
	"errors"
	"fmt"
)

const (
	titleMaxLength       = 100
	descriptionMaxLength = 1000
	minCustomInterval    = 1
	maxCustomInterval    = 365
)

// Broad error kinds the transport layer maps to response statuses.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrInvalidSchedule = errors.New("invalid schedule")
)

// Validation defects. Each wraps ErrValidation so callers can match either
// the broad kind or the specific reason.
var (
	ErrTitleRequired      = fmt.Errorf("%w: title is required", ErrValidation)
	ErrTitleTooLong       = fmt.Errorf("%w: title exceeds %d characters", ErrValidation, titleMaxLength)
	ErrDescriptionTooLong = fmt.Errorf("%w: description exceeds %d characters", ErrValidation, descriptionMaxLength)
	ErrIntervalRequired   = fmt.Errorf("%w: custom cycle requires customIntervalDays", ErrValidation)
	ErrIntervalOutOfRange = fmt.Errorf("%w: customIntervalDays must be between %d and %d", ErrValidation, minCustomInterval, maxCustomInterval)
	ErrIntervalNotAllowed = fmt.Errorf("%w: customIntervalDays is only allowed for the custom cycle", ErrValidation)
	ErrUnknownCycle       = fmt.Errorf("%w: unknown cycle type", ErrValidation)
	ErrUnknownStatus      = fmt.Errorf("%w: unknown task status", ErrValidation)
	ErrRoomNameRequired   = fmt.Errorf("%w: room name is required", ErrValidation)
	ErrUserNameRequired   = fmt.Errorf("%w: user name is required", ErrValidation)
	ErrEmailRequired      = fmt.Errorf("%w: email is required", ErrValidation)
)
