package domain

import "net/http"

// AppError is an error the HTTP layer knows how to render: a status code, a
// stable machine-readable code and a human message.
type AppError struct {
	httpCode int
	code     string
	message  string
	cause    error
}

func NewAppError(httpCode int, code, message string) *AppError {
	return &AppError{httpCode: httpCode, code: code, message: message}
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *AppError) HTTPCode() int   { return e.httpCode }
func (e *AppError) Code() string    { return e.code }
func (e *AppError) Message() string { return e.message }
func (e *AppError) Unwrap() error   { return e.cause }

// Is matches on the business code so that copies made by WithMessage or Wrap
// still compare equal to the predefined value.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.code == e.code
}

// WithMessage returns a copy carrying a more specific user-facing message.
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{httpCode: e.httpCode, code: e.code, message: message, cause: e.cause}
}

// Wrap returns a copy that keeps err as its cause.
func (e *AppError) Wrap(err error) *AppError {
	return &AppError{httpCode: e.httpCode, code: e.code, message: e.message, cause: err}
}

var (
	ErrValidation = NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", "All fields are required")

	ErrUserNotFound    = NewAppError(http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	ErrProductNotFound = NewAppError(http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	ErrOrderNotFound   = NewAppError(http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")

	ErrDuplicateEmail   = NewAppError(http.StatusConflict, "DUPLICATE_EMAIL", "Email already exists")
	ErrDuplicateProduct = NewAppError(http.StatusConflict, "DUPLICATE_PRODUCT", "Product with this name already exists")

	ErrInsufficientStock = NewAppError(http.StatusConflict, "INSUFFICIENT_STOCK", "Not enough stock available")

	ErrInvalidCredentials = NewAppError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	ErrNotApproved        = NewAppError(http.StatusForbidden, "NOT_APPROVED", "Account not approved by Admin")

	ErrUnauthorized = NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	ErrForbidden    = NewAppError(http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action")

	ErrStore = NewAppError(http.StatusInternalServerError, "STORE_ERROR", "Server error")
)
