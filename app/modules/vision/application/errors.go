package visionservice

import "errors"

// Caller errors for bulk imports. Per-item problems never surface here; they become failed
// outcomes instead.
var (
	// ErrEmptyItemID indicates a bulk item without an id.
	ErrEmptyItemID = errors.New("bulk item id is empty")

	// ErrDuplicateItemID indicates two bulk items share an id.
	ErrDuplicateItemID = errors.New("duplicate bulk item id")
)
