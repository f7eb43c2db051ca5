package errs

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")

	// Card encoding pipeline.
	ErrPayloadTooLarge = errors.New("contact card exceeds qr code capacity")
	ErrContainerEncode = errors.New("failed to encode image container")

	// Auth.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrSelfDelete         = errors.New("cannot delete own account")
)
