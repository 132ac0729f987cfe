package gerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a stable machine-readable error category.
type Kind string

const (
	KindValidationFailed      Kind = "ValidationFailed"
	KindDuplicateRegistration Kind = "DuplicateRegistration"
	KindNotFound              Kind = "NotFound"
	KindAlreadyVerified       Kind = "AlreadyVerified"
	KindCodeExpired           Kind = "CodeExpired"
	KindCodeMismatch          Kind = "CodeMismatch"
	KindUnauthorized          Kind = "Unauthorized"
	KindForbidden             Kind = "Forbidden"
	KindConflict              Kind = "Conflict"
	KindRateLimited           Kind = "RateLimited"
	KindDeliveryFailed        Kind = "DeliveryFailed"
	KindInternal              Kind = "Internal"
)

// FieldViolation points at a single invalid input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the error type returned by services. Two errors match with
// errors.Is when their kinds are equal.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldViolation
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap attaches cause to a new error of the given kind. The cause is kept
// for logging and never rendered to clients.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

func Validation(fields []FieldViolation) *Error {
	return &Error{
		Kind:    KindValidationFailed,
		Message: "Validation failed",
		Fields:  fields,
	}
}

var (
	ErrValidationFailed      = New(KindValidationFailed, "Validation failed")
	ErrDuplicateRegistration = New(KindDuplicateRegistration, "Email already registered")
	ErrEntryNotFound         = New(KindNotFound, "No waitlist entry found for this email")
	ErrAdminNotFound         = New(KindNotFound, "Admin not found")
	ErrNoDataToExport        = New(KindNotFound, "No data to export")
	ErrAlreadyVerified       = New(KindAlreadyVerified, "Email already verified")
	ErrCodeExpired           = New(KindCodeExpired, "Verification code has expired")
	ErrCodeMismatch          = New(KindCodeMismatch, "Invalid verification code")
	ErrBadCredentials        = New(KindUnauthorized, "Incorrect email or password")
	ErrAccountDeactivated    = New(KindUnauthorized, "Your account has been deactivated")
	ErrUnauthorized          = New(KindUnauthorized, "You are not logged in")
	ErrForbidden             = New(KindForbidden, "You do not have permission to perform this action")
	ErrPhoneRegistered       = New(KindDuplicateRegistration, "Phone number already registered")
	ErrAdminExists           = New(KindConflict, "Admin with this email already exists")
	ErrRateLimited           = New(KindRateLimited, "Too many requests, please try again later")
	ErrDeliveryFailed        = New(KindDeliveryFailed, "Verification code could not be delivered")
	MailApiLimitReached      = New(KindDeliveryFailed, "mail api limit reached")
	ErrInternal              = New(KindInternal, "Something went wrong")
)

// KindOf returns the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var kindStatus = map[Kind]int{
	KindValidationFailed:      http.StatusBadRequest,
	KindDuplicateRegistration: http.StatusBadRequest,
	KindNotFound:              http.StatusNotFound,
	KindAlreadyVerified:       http.StatusBadRequest,
	KindCodeExpired:           http.StatusBadRequest,
	KindCodeMismatch:          http.StatusBadRequest,
	KindUnauthorized:          http.StatusUnauthorized,
	KindForbidden:             http.StatusForbidden,
	KindConflict:              http.StatusConflict,
	KindRateLimited:           http.StatusTooManyRequests,
	KindDeliveryFailed:        http.StatusInternalServerError,
	KindInternal:              http.StatusInternalServerError,
}

func HTTPStatus(kind Kind) int {
	if s, ok := kindStatus[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}
