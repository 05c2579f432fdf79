package cartola

import "errors"

// Sentinel kinds for upstream API failures.
var (
	ErrUpstream = errors.New("cartola api request failed")
)
