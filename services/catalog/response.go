package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func init() {
	// preços saem como número JSON, como o front-end espera
	decimal.MarshalJSONWithoutQuotes = true
}

// SuccessResponse é o envelope de sucesso
type SuccessResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data"`
	Message string         `json:"message,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// ErrorResponse é o envelope de erro
type ErrorResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

func respondSuccess(c *gin.Context, status int, data any, message string, meta map[string]any) {
	if message == "" {
		message = "Operation successful"
	}
	c.JSON(status, SuccessResponse{
		Success: true,
		Data:    data,
		Message: message,
		Meta:    meta,
	})
}

func respondOK(c *gin.Context, data any, message string) {
	respondSuccess(c, http.StatusOK, data, message, nil)
}

func respondCreated(c *gin.Context, data any, message string) {
	if message == "" {
		message = "Resource created successfully"
	}
	respondSuccess(c, http.StatusCreated, data, message, nil)
}

// respondNoContent responde 204 sem corpo
func respondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func respondFailure(c *gin.Context, status int, message string, details map[string]any) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// respondError mapeia o erro para o status HTTP: validação 400, não encontrado 404, resto 500
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ [%s %s] %v", c.Request.Method, c.FullPath(), err)
	}
	respondFailure(c, status, err.Error(), nil)
}

func errorStatus(err error) int {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
