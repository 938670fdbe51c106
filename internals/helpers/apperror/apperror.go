// Package apperror berisi taksonomi error core absensi dan pemetaannya ke HTTP.
package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// InvalidFilterError: filter rusak atau kontradiktif, ditolak sebelum menyentuh DB.
type InvalidFilterError struct {
	Field  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	if e.Field == "" {
		return "invalid filter: " + e.Reason
	}
	return fmt.Sprintf("invalid filter %s: %s", e.Field, e.Reason)
}

// InvalidStatusError: status di luar present|absent|late|official.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid attendance status %q (allowed: present, absent, late, official)", e.Value)
}

// QueryExecutionError membungkus kegagalan store. Tidak di-retry.
type QueryExecutionError struct {
	Op   string
	Code string // SQLSTATE kalau tersedia
	Err  error
}

func (e *QueryExecutionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %v (sqlstate %s)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryExecutionError) Unwrap() error { return e.Err }

// IsUniqueViolation true untuk SQLSTATE 23505 (atau pesan setara dari driver lain).
func (e *QueryExecutionError) IsUniqueViolation() bool {
	if e.Code == "23505" {
		return true
	}
	s := strings.ToLower(e.Err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}

// IsForeignKeyViolation true untuk SQLSTATE 23503.
func (e *QueryExecutionError) IsForeignKeyViolation() bool {
	if e.Code == "23503" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Err.Error()), "foreign key constraint")
}

// NotFoundError: lookup by id tidak menemukan baris yang wajib ada.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidInputError: payload mark/import tidak valid (tanggal, id, field wajib).
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ForbiddenError: role/scope pemanggil tidak mengizinkan operasi.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return "forbidden: " + e.Reason }

// ConflictError: data yang diminta bentrok dengan baris lain, bukan kegagalan store.
type ConflictError struct {
	Entity string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

func Filter(field, reason string) error {
	return &InvalidFilterError{Field: field, Reason: reason}
}

func Status(value string) error {
	return &InvalidStatusError{Value: value}
}

func Input(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func Forbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}

func Conflict(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// Query membungkus error store apa adanya. nil tetap nil.
func Query(op string, err error) error {
	if err == nil {
		return nil
	}
	var qe *QueryExecutionError
	if errors.As(err, &qe) {
		return err
	}
	out := &QueryExecutionError{Op: op, Err: err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		out.Code = pgErr.Code
	}
	return out
}

// HTTPStatus memetakan error core ke status HTTP.
func HTTPStatus(err error) int {
	var (
		fe  *InvalidFilterError
		ie  *InvalidInputError
		se  *InvalidStatusError
		nf  *NotFoundError
		fb  *ForbiddenError
		cf  *ConflictError
		qe  *QueryExecutionError
		fib *fiber.Error
	)
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &fe), errors.As(err, &ie):
		return fiber.StatusBadRequest
	case errors.As(err, &se):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &nf):
		return fiber.StatusNotFound
	case errors.As(err, &fb):
		return fiber.StatusForbidden
	case errors.As(err, &cf):
		return fiber.StatusConflict
	case errors.As(err, &qe):
		if qe.IsUniqueViolation() {
			return fiber.StatusConflict
		}
		if qe.IsForeignKeyViolation() {
			return fiber.StatusBadRequest
		}
		return fiber.StatusInternalServerError
	case errors.As(err, &fib):
		return fib.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// Code: kode mesin untuk hasil per-item (bulk).
func Code(err error) string {
	var (
		fe *InvalidFilterError
		ie *InvalidInputError
		se *InvalidStatusError
		nf *NotFoundError
		fb *ForbiddenError
		cf *ConflictError
		qe *QueryExecutionError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fe):
		return "INVALID_FILTER"
	case errors.As(err, &ie):
		return "INVALID_INPUT"
	case errors.As(err, &se):
		return "INVALID_STATUS"
	case errors.As(err, &nf):
		return "NOT_FOUND"
	case errors.As(err, &fb):
		return "FORBIDDEN"
	case errors.As(err, &cf):
		return "CONFLICT"
	case errors.As(err, &qe):
		return "QUERY_EXECUTION"
	default:
		return "ERROR"
	}
}
