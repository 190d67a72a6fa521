package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/models"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
}

// SuccessResponse sends a success response with data
func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseHandler sends an error response
func ErrorResponseHandler(c echo.Context, statusCode int, errorMessage string) error {
	return c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error:   errorMessage,
		Code:    statusCode,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, errorMessage)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusUnauthorized, orDefault(errorMessage, "Unauthorized"))
}

// ForbiddenResponse sends a 403 Forbidden response
func ForbiddenResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusForbidden, orDefault(errorMessage, "Forbidden"))
}

// NotFoundResponse sends a 404 Not Found response
func NotFoundResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusNotFound, orDefault(errorMessage, "Resource not found"))
}

// InternalServerErrorResponse sends a 500 response
func InternalServerErrorResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusInternalServerError, orDefault(errorMessage, "Internal server error"))
}

// StatusFromError maps a domain error onto an HTTP status code
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidCoordinate),
		errors.Is(err, models.ErrInvalidRequest),
		errors.Is(err, models.ErrInvalidScoringConfig):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrTripNotFound),
		errors.Is(err, models.ErrOfferNotFound),
		errors.Is(err, models.ErrWalletNotFound),
		errors.Is(err, models.ErrDriverNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, models.ErrTripUnavailable),
		errors.Is(err, models.ErrOfferNoLongerValid),
		errors.Is(err, models.ErrTripNotInProgress),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrDriverBusy),
		errors.Is(err, models.ErrDispatchInProgress):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// DomainErrorResponse writes err with the status it maps to. The message of
// an unmapped error is not sent to the client.
func DomainErrorResponse(c echo.Context, err error) error {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		return InternalServerErrorResponse(c, "")
	}
	return ErrorResponseHandler(c, status, err.Error())
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
