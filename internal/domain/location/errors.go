package location

import "errors"

// Location domain errors
var (
	ErrLocationNotFound = errors.New("approved location not found")
)
