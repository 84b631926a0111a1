package main

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE tratados pelos repositórios
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// ValidationError indica entrada inválida (HTTP 400)
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError indica recurso inexistente (HTTP 404)
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// Erros de domínio
var (
	ErrProductNotFound          = NewNotFoundError("Product not found")
	ErrInventoryNotFound        = NewNotFoundError("Inventory not found")
	ErrProductInventoryNotFound = NewNotFoundError("Inventory not found for this product")

	ErrNegativePriceOrQuantity = NewValidationError("Price and quantity must be non-negative")
	ErrNegativeQuantity        = NewValidationError("Quantity cannot be negative")
	ErrNoProductsProvided      = NewValidationError("No products provided")
	ErrNoIDsProvided           = NewValidationError("No IDs provided for deletion")
	ErrInventoryAlreadyExists  = NewValidationError("Inventory already exists for this product")
)

func isValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func isNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// pgErrorCode retorna o SQLSTATE de um erro do Postgres, ou "" se não for um
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
