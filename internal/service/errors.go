package service

// Kind buckets a failure into the category the HTTP layer maps to a status
// code. Anything that is not a *Error surfaces as an internal error.
type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindUnauthorized
	KindForbidden
	KindNotFound
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func notFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Shared failure values. Login failures collapse into one message on purpose:
// the caller must not learn whether the email or the password was wrong.
var (
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Invalid email or password"}
	ErrEmailTaken         = &Error{Kind: KindConflict, Message: "Email already registered"}
	ErrRefreshInvalid     = &Error{Kind: KindUnauthorized, Message: "Invalid or expired refresh token"}
	ErrRefreshUserGone    = &Error{Kind: KindUnauthorized, Message: "User not found"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "User not found"}
)
