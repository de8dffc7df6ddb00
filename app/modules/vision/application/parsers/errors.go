package parsers

import "errors"

var (
	// ErrUnsupportedFileType indicates no roster parser handles the file extension.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrEmptyRoster indicates a roster file without players.
	ErrEmptyRoster = errors.New("roster has no players")

	// ErrDuplicatePlayerID indicates two roster rows share a player id.
	ErrDuplicatePlayerID = errors.New("duplicate roster player id")

	// ErrMissingRosterColumn indicates the id or name column could not be located.
	ErrMissingRosterColumn = errors.New("roster header must contain id and name columns")

	// ErrMalformedExtraction indicates extraction JSON that cannot be decoded.
	ErrMalformedExtraction = errors.New("malformed extraction")
)
