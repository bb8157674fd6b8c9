// Package domain defines domain-level errors for the validation feature.
package domain

import "errors"

// Describer failure kinds. The orchestrator recovers from all of them and turns them into a
// rejected verdict; none of them reach the HTTP layer.
var (
	// ErrDescriberUnavailable indicates the vision describer is not configured or not authenticated.
	ErrDescriberUnavailable = errors.New("vision describer unavailable")

	// ErrDescriberTimeout indicates the describer did not answer before the deadline.
	ErrDescriberTimeout = errors.New("vision describer timed out")

	// ErrMalformedResponse indicates the describer output is not valid structured data.
	ErrMalformedResponse = errors.New("malformed describer response")

	// ErrQuotaExceeded indicates the describer usage quota has been reached.
	// Its text carries the "quota" marker checked by the orchestrator.
	ErrQuotaExceeded = errors.New("describer quota exceeded")
)
