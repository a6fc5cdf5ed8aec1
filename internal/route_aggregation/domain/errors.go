package domain

import "errors"

var (
	ErrMalformedDocument = errors.New("malformed document")
	ErrUnknownCategory   = errors.New("unknown route category")
	ErrRoutesNotReady    = errors.New("route tables not ready")
	ErrInvalidSelection  = errors.New("invalid route selection")
)
