package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyOwnerID       = errors.New("owner id is required")
	ErrEmptyTitle         = errors.New("title is required")
	ErrInvalidKind        = errors.New("invalid record kind")
	ErrInvalidPayload     = errors.New("invalid record payload")
	ErrEmptyPassword      = errors.New("password payload requires a password")
	ErrEmptyURL           = errors.New("link payload requires a url")
	ErrEmptySealedPayload = errors.New("sealed payload is required")
)
