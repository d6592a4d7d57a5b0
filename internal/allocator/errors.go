package allocator

import "errors"

var (
	ErrInvalidRequirement = errors.New("invalid requirement")
	ErrEventNotFound      = errors.New("event not found")
	ErrResourceNotFound   = errors.New("resource not found")
)
