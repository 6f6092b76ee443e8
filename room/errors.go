package room

import "errors"

// Code identifies an action-legality violation. Codes are the sole error
// contract with callers; there is no user-facing formatting here.
type Code string

const (
	CodeWrongTurn           Code = "WRONG_TURN"
	CodeFoldNotAllowed      Code = "FOLD_NOT_ALLOWED"
	CodeCheckNotAllowed     Code = "CHECK_NOT_ALLOWED"
	CodeCallNotAllowed      Code = "CALL_NOT_ALLOWED"
	CodeRaiseNotAllowed     Code = "RAISE_NOT_ALLOWED"
	CodeRaiseAmountTooSmall Code = "RAISE_AMOUNT_TOO_SMALL"
	CodeRaiseAmountTooBig   Code = "RAISE_AMOUNT_TOO_BIG"
	CodeAllInNotAllowed     Code = "ALL_IN_NOT_ALLOWED"
)

// ActionError is a rejected action. Actions validate before they mutate, so
// an ActionError always leaves room and player state untouched.
type ActionError struct {
	Code    Code
	Message string
}

func (e *ActionError) Error() string {
	return e.Message
}

var (
	ErrWrongTurn           = &ActionError{Code: CodeWrongTurn, Message: "not this player's turn"}
	ErrFoldNotAllowed      = &ActionError{Code: CodeFoldNotAllowed, Message: "fold not allowed"}
	ErrCheckNotAllowed     = &ActionError{Code: CodeCheckNotAllowed, Message: "check not allowed"}
	ErrCallNotAllowed      = &ActionError{Code: CodeCallNotAllowed, Message: "call not allowed"}
	ErrRaiseNotAllowed     = &ActionError{Code: CodeRaiseNotAllowed, Message: "raise not allowed"}
	ErrRaiseAmountTooSmall = &ActionError{Code: CodeRaiseAmountTooSmall, Message: "raise amount below minimum"}
	ErrRaiseAmountTooBig   = &ActionError{Code: CodeRaiseAmountTooBig, Message: "raise amount above maximum"}
	ErrAllInNotAllowed     = &ActionError{Code: CodeAllInNotAllowed, Message: "all-in not allowed"}
)

// ErrNotFound is returned by Store implementations when no snapshot exists
// for the requested room id.
var ErrNotFound = errors.New("room not found")

// CodeOf extracts the action code from err, or "" if err is not an
// ActionError.
func CodeOf(err error) Code {
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr.Code
	}
	return ""
}
