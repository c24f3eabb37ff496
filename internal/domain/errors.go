package domain

import "errors"

var (
	ErrMissingCredentials = errors.New("image generator credentials missing")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrEmptySource        = errors.New("source image is empty")
	ErrUnsupportedMedia   = errors.New("unsupported media type")
	ErrSourceTooLarge     = errors.New("source image too large")
	ErrBatchNotFound      = errors.New("batch not found")
	ErrJobNotFound        = errors.New("job not found")
	ErrJobPending         = errors.New("job still pending")
	ErrProviderFailure    = errors.New("provider failure")
)
