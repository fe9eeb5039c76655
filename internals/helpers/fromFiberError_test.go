package helper

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"field errors", FieldErrors{"name": {"is required"}}, fiber.StatusUnprocessableEntity},
		{"fiber error", fiber.NewError(fiber.StatusForbidden, "no"), fiber.StatusForbidden},
		{"not found", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), fiber.StatusNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, fiber.StatusConflict},
		{"foreign key", gorm.ErrForeignKeyViolated, fiber.StatusConflict},
		{"deadline", context.DeadlineExceeded, fiber.StatusServiceUnavailable},
		{"pg timeout", &pgconn.PgError{Code: "57014"}, fiber.StatusServiceUnavailable},
		{"pg not null", &pgconn.PgError{Code: "23502", ColumnName: "student_name"}, fiber.StatusBadRequest},
		{"unknown pg", &pgconn.PgError{Code: "XX000"}, fiber.StatusInternalServerError},
		{"plain", fmt.Errorf("boom"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			assert.Equal(t, tc.want, resp.StatusCode, string(body))
			assert.Contains(t, string(body), `"success":false`)
		})
	}
}
