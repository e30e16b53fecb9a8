package service

import "errors"

var (
	// ErrRevisionConflict is returned when a config was changed since it was loaded
	ErrRevisionConflict = errors.New("guild config was modified concurrently")

	// ErrConfigNotFound is returned when neither the guild nor the default entry exists
	ErrConfigNotFound = errors.New("guild configuration not found")

	ErrInvalidRankList       = errors.New("invalid staff rank list")
	ErrInvalidInfractionType = errors.New("invalid infraction type")
	ErrDemotionRequiresRank  = errors.New("demotion requires a new rank")
	ErrInvalidRank           = errors.New("invalid rank")
	ErrRankNotHigher         = errors.New("new rank must be higher than current rank")
	ErrIssuerRankTooLow      = errors.New("issuer rank must be higher than the new rank")
	ErrInvalidDateFormat     = errors.New("invalid date format")
	ErrEndNotAfterStart      = errors.New("end date must be after start date")
	ErrInvalidServerStatus   = errors.New("invalid server status")
	ErrMissingReason         = errors.New("reason is required")
)
