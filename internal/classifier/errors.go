package classifier

import "errors"

var (
	// ErrValidation reports unusable training input.
	ErrValidation = errors.New("validation error")
	// ErrIO reports an artifact or dataset file that cannot be read or written.
	ErrIO = errors.New("io error")
	// ErrDeserialization reports an artifact that is malformed or has an incompatible shape.
	ErrDeserialization = errors.New("deserialization error")
)
