package helper

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// FromFiberError turns an error returned by a handler (or a transaction body)
// into the standard JSON envelope.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	var ve FieldErrors
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &ve):
		return JsonValidationError(c, ve)
	case errors.As(err, &fe):
		return JsonError(c, fe.Code, fe.Message)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return JsonError(c, fiber.StatusNotFound, "Record not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return JsonError(c, fiber.StatusConflict, "Record already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return JsonError(c, fiber.StatusConflict, "Referenced record is missing or still in use")
	case errors.Is(err, context.DeadlineExceeded):
		return JsonError(c, fiber.StatusServiceUnavailable, "Request timed out")
	case errors.As(err, &pgErr):
		if status, msg, ok := pgStatus(pgErr); ok {
			return JsonError(c, status, msg)
		}
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}

// ErrorHandler is installed as fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}

// pgStatus maps the Postgres error codes that reach handlers untranslated.
func pgStatus(e *pgconn.PgError) (int, string, bool) {
	switch e.Code {
	case "23502", "22P02", "22003":
		if e.ColumnName == "" {
			return fiber.StatusBadRequest, "Invalid value", true
		}
		return fiber.StatusBadRequest, "Invalid value for " + e.ColumnName, true
	case "57014":
		return fiber.StatusServiceUnavailable, "Request timed out", true
	case "40001", "40P01":
		return fiber.StatusConflict, "Concurrent update, please retry", true
	}
	return 0, "", false
}
