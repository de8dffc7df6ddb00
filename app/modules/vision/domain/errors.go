package visiondomain

import "errors"

// Reconciliation errors. Callers treat both as "drop the player and raise the review flag".
var (
	// ErrNoRosterMatch indicates no roster entry matches the extracted name.
	ErrNoRosterMatch = errors.New("no roster player matches extracted name")

	// ErrAmbiguousRosterMatch indicates several roster entries match equally well.
	ErrAmbiguousRosterMatch = errors.New("extracted name matches more than one roster player")
)
