package source

import (
	"errors"
	"time"
)

const (
	// DefaultTimeout bounds a single document fetch.
	DefaultTimeout = 30 * time.Second

	// MaxDocumentBytes caps the size of a document. Larger documents are
	// rejected rather than truncated.
	MaxDocumentBytes = 32 << 20
)

var ErrDocumentTooLarge = errors.New("source document too large")
