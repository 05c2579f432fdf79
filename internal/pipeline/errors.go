package pipeline

import "errors"

// Sentinel kinds for stage failures.
var (
	ErrNoRawData        = errors.New("no raw data rows ingested")
	ErrNullValues       = errors.New("null values found in numeric columns")
	ErrUnknownPositions = errors.New("unexpected position categories found")
	ErrDuplicateRows    = errors.New("duplicate player-round rows found")
	ErrEmptyTable       = errors.New("consolidated table is empty")
)
