package handlers

import (
	"errors"
	"net/http"

	"gatekeeper/config"
	"gatekeeper/service"

	"github.com/gin-gonic/gin"
)

// Error categories exposed in the error envelope.
const (
	CategoryValidation   = "validation_error"
	CategoryNotFound     = "not_found"
	CategoryInvalidState = "invalid_state"
	CategoryInternal     = "internal_error"
)

// SuccessResponse is the envelope every successful JSON response uses.
type SuccessResponse struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination carries list paging metadata.
type Pagination struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// ErrorResponse is the envelope every error response uses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, SuccessResponse{Success: true, Data: data})
}

func respondDataMessage(c *gin.Context, status int, data any, message string) {
	c.JSON(status, SuccessResponse{Success: true, Data: data, Message: message})
}

func respondPage(c *gin.Context, data any, pagination Pagination) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data, Pagination: &pagination})
}

func respondError(c *gin.Context, status int, category, message string) {
	c.JSON(status, ErrorResponse{Error: category, Message: message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Internal error detail is hidden outside development environments.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, CategoryValidation, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, CategoryNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		respondError(c, http.StatusBadRequest, CategoryInvalidState, err.Error())
	default:
		message := "internal server error"
		if config.Settings.Env != "production" {
			message = err.Error()
		}
		respondError(c, http.StatusInternalServerError, CategoryInternal, message)
	}
}
