package analyses

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInputTooShort = errors.New("job text too short to analyze")
)
