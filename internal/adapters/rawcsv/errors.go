package rawcsv

import "errors"

// Sentinel kinds for raw snapshot discovery and reading.
var (
	ErrMissingRoot = errors.New("raw data root not found")
	ErrNoSeasons   = errors.New("no season directories found")
	ErrEmptyFile   = errors.New("raw file has no data rows")
)
