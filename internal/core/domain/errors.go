package domain

import "errors"

// Sentinel errors for classification with errors.Is.
var (
	// ErrConfigInvalid indicates a configuration problem (missing
	// directory, unreadable prompt file, missing credentials).
	// Configuration errors are fatal and abort the run pre-flight.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrEmptyVariantDir indicates a variant directory contains no
	// context files. Treated as a configuration error.
	ErrEmptyVariantDir = errors.New("variant directory is empty")

	// ErrAuthInvalid indicates the provider rejected the credentials.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the provider returned a rate limit
	// response. Per-combination, recoverable at the run level.
	ErrRateLimited = errors.New("rate limited")

	// ErrProviderUnavailable indicates the LLM service could not be
	// reached or returned a transient failure.
	ErrProviderUnavailable = errors.New("LLM service unavailable")
)

// IsConfigError returns true for errors that must abort the run
// before any combination is processed.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigInvalid) ||
		errors.Is(err, ErrEmptyVariantDir) ||
		errors.Is(err, ErrAuthInvalid)
}
