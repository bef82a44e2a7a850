package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what services hand back to the routes layer. A nil
// ErrorResponse means success; otherwise the value is marshaled as the
// response body with its Code() as the HTTP status.
type ErrorResponse interface {
	Code() int
	Message() string
}

type simpleError struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error"`
}

func (e *simpleError) Code() int {
	return e.StatusCode
}

func (e *simpleError) Message() string {
	return e.Msg
}

func NewSimple(code int, message string) ErrorResponse {
	return &simpleError{StatusCode: code, Msg: message}
}

func NewMissingParamError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter: %s", name))
}

func NewInvalidParamTypeError(name, expected string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Parameter %s must be of type %s", name, expected))
}

var (
	InternalServerError   = NewSimple(http.StatusInternalServerError, "Something went wrong, please try again")
	MalformedBodyError    = NewSimple(http.StatusBadRequest, "Malformed request body")
	NotFoundError         = NewSimple(http.StatusNotFound, "Resource not found")
	InvalidAuthTokenError = NewSimple(http.StatusUnauthorized, "Missing or invalid authentication token")

	UserAlreadyExistsError    = NewSimple(http.StatusConflict, "A user with this email already exists")
	UserAlreadyConfirmedError = NewSimple(http.StatusConflict, "User is already confirmed")

	BusinessNotFoundError      = NewSimple(http.StatusNotFound, "No business profile for this account")
	BookingPageDisabledError   = NewSimple(http.StatusNotFound, "Booking page is not available")
	ServiceNotBookableError    = NewSimple(http.StatusConflict, "Service is not available for booking")
	InvalidTransitionError     = NewSimple(http.StatusConflict, "Booking status change is not allowed")
	InvalidWebhookPayloadError = NewSimple(http.StatusBadRequest, "Invalid webhook payload")

	IDPInvalidPasswordError     = NewSimple(http.StatusBadRequest, "Password rejected by identity provider")
	IDPExistingEmailError       = NewSimple(http.StatusConflict, "Email already registered with identity provider")
	IDPUserNotFoundError        = NewSimple(http.StatusNotFound, "Account not found")
	IDPUserNotConfirmedError    = NewSimple(http.StatusForbidden, "Account not confirmed yet")
	IDPCredentialsMismatchError = NewSimple(http.StatusUnauthorized, "Incorrect email or password")
	IDPConfirmCodeMismatchError = NewSimple(http.StatusBadRequest, "Verification code does not match")
	IDPConfirmCodeExpiredError  = NewSimple(http.StatusBadRequest, "Verification code has expired")
)

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type validationError struct {
	Msg    string       `json:"error"`
	Fields []fieldError `json:"fields"`
}

func (e *validationError) Code() int {
	return http.StatusBadRequest
}

func (e *validationError) Message() string {
	return e.Msg
}

// FromValidationError flattens validator.ValidationErrors into a 400 body
// listing each offending field with its failed tag.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make([]fieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = fieldError{
			Field:  fe.Field(),
			Reason: fe.Tag(),
		}
	}
	return &validationError{
		Msg:    "Request validation failed",
		Fields: fields,
	}
}
