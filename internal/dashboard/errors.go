package dashboard

import "errors"

var (
	errInvalidLimit     = errors.New("limit must be a positive integer")
	errInvalidMinRaised = errors.New("min_raised must be a non-negative number")
)
