package artifact

import "errors"

// Sentinel kinds for artifact access.
var (
	ErrArtifactMissing = errors.New("artifact not found")
)
