package services

// Error is a domain failure with a stable machine-readable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so copies made with
// WithMessage still match the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy of e with a more specific message.
func (e *Error) WithMessage(message string) *Error {
	return &Error{Code: e.Code, Message: message}
}

var (
	ErrObjectNotFound = &Error{
		Code:    "object_not_found",
		Message: "Object not found",
	}
	ErrPasswordInvalidFormat = &Error{
		Code:    "password_invalid_format",
		Message: "Password must contain an uppercase letter, a lowercase letter, a digit and a symbol",
	}
	ErrPasswordIncorrect = &Error{
		Code:    "password_incorrect",
		Message: "Password is incorrect",
	}
	ErrUsernameEmailCannotBothBeNone = &Error{
		Code:    "username_email_cannot_both_be_none",
		Message: "Username and email cannot both be empty",
	}
	ErrUsernameAlreadyUsed = &Error{
		Code:    "username_already_used",
		Message: "Username is already used",
	}
	ErrEmailAlreadyUsed = &Error{
		Code:    "email_already_used",
		Message: "Email is already used",
	}
	ErrCommentReplyIDIncorrect = &Error{
		Code:    "comment_reply_id_incorrect",
		Message: "Comment to reply does not exist",
	}
	ErrUnauthenticated = &Error{
		Code:    "unauthenticated",
		Message: "Could not validate credentials",
	}
)
