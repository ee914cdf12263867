package content

import "errors"

// Content decode errors. Callers skip items on ErrUnknownType and treat
// ErrMalformedRecord as fatal for the single record being parsed.
var (
	ErrUnknownType     = errors.New("unknown content type")
	ErrMalformedRecord = errors.New("malformed content record")
)
