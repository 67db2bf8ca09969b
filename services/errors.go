package services

import "errors"

// Common service-level errors
var (
	// Entry errors
	ErrDateRequired  = errors.New("date is required")
	ErrInvalidDate   = errors.New("date must be in YYYY-MM-DD format")
	ErrTitleRequired = errors.New("title is required")

	// Media errors
	ErrMissingFields = errors.New("name, type and url are required")
	ErrMediaNotFound = errors.New("media not found")

	// Auth errors
	ErrWrongPassword = errors.New("wrong password")
)
