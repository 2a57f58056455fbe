package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/middleware"
)

// APIResponse describes the standard envelope returned by the API.
type APIResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return respond(c, status, APIResponse{Status: "success", Message: message, Data: data})
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return respond(c, status, APIResponse{Status: "error", Message: message})
}

// ErrorWithData sends an error envelope that carries structured failure details.
func ErrorWithData(c echo.Context, status int, message string, data any) error {
	return respond(c, status, APIResponse{Status: "error", Message: message, Data: data})
}

func respond(c echo.Context, status int, payload APIResponse) error {
	payload.RequestID = middleware.RequestIDFromContext(c)
	return c.JSON(status, payload)
}
