// Package domain defines domain-level errors for the target feature.
package domain

import "errors"

var (
	// ErrTargetNotFound is returned when no catalog entry exists for the given id.
	ErrTargetNotFound = errors.New("target not found")

	// ErrInvalidCatalog is returned when the catalog document cannot be decoded or is inconsistent.
	ErrInvalidCatalog = errors.New("invalid target catalog")
)
