package eligibility

import "errors"

var (
	// ErrValidation marks malformed evaluation input. No partial
	// computation is attempted once raised.
	ErrValidation = errors.New("invalid evaluation input")

	// ErrRequirementNotFound means no crew requirement is configured for a
	// role/date. Fatal for that evaluation: a missing minimum must never be
	// treated as zero.
	ErrRequirementNotFound = errors.New("crew requirement not configured")

	// ErrDataIntegrity marks corrupt crewing data, such as more pilots on
	// approved leave than are active. Never clamped or downgraded.
	ErrDataIntegrity = errors.New("crew data integrity violation")
)
