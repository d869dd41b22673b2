package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidSlug      = errors.New("invalid slug")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMissingType      = errors.New("webhook body has no document type")
)
