package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// AppError standardizes application errors.
//
// IsOperational marks expected, user-facing faults whose message is safe to
// return to the client. Everything else is suppressed at the boundary.
type AppError struct {
	StatusCode    int
	Status        string
	Message       string
	IsOperational bool
	Err           error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New constructs an operational AppError with the given client-facing message.
func New(message string, statusCode int) *AppError {
	return &AppError{
		StatusCode:    statusCode,
		Status:        statusFor(statusCode),
		Message:       message,
		IsOperational: true,
	}
}

func NewBadRequest(message string) *AppError {
	return New(message, http.StatusBadRequest)
}

func NewUnauthenticated(message string) *AppError {
	return New(message, http.StatusUnauthorized)
}

func NewForbidden(message string) *AppError {
	return New(message, http.StatusForbidden)
}

func NewNotFound(message string) *AppError {
	return New(message, http.StatusNotFound)
}

// NewInternal wraps an unexpected fault. The original error is retained for
// server-side logging and never reaches the client.
func NewInternal(err error) *AppError {
	return &AppError{
		StatusCode:    http.StatusInternalServerError,
		Status:        "error",
		Message:       "Something went wrong!",
		IsOperational: false,
		Err:           err,
	}
}

// Postgres error codes mapped to client-facing faults.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// Normalize converts an arbitrary fault into the single AppError shape sent
// to clients. Classification order: store faults, token expiry, other token
// faults, operational passthrough, unknown.
func Normalize(err error) *AppError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return NewBadRequest("Duplicate field value entered")
		case pgForeignKeyViolation:
			return NewBadRequest("Invalid foreign key")
		case pgInvalidTextRepr:
			return NewBadRequest("Invalid ID")
		default:
			return NewBadRequest("Database error: " + pgErr.Message)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("Record not found")
	}

	// Expiry is checked before signature so an expired token never surfaces
	// as a signature fault.
	if errors.Is(err, jwt.ErrTokenExpired) {
		return NewUnauthenticated("Your token has expired! Please log in again.")
	}
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) ||
		errors.Is(err, jwt.ErrTokenInvalidClaims) {
		return NewUnauthenticated("Invalid token. Please log in again!")
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.IsOperational {
		return appErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return New(fiberErr.Message, fiberErr.Code)
	}

	return NewInternal(err)
}

// statusFor follows the "fail" for client faults, "error" otherwise split.
func statusFor(statusCode int) string {
	if statusCode >= 400 && statusCode < 500 {
		return "fail"
	}
	return "error"
}
