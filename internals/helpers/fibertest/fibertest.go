// Package fibertest builds Fiber apps for handler tests, with the production
// error handler and a fake authenticated caller.
package fibertest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"sei_backend/internals/constants"
	helper "sei_backend/internals/helpers"
	helperAuth "sei_backend/internals/helpers/auth"
)

// New returns an app whose requests are authenticated as userID with role.
// An empty role leaves the request anonymous.
func New(role constants.Role, userID uuid.UUID) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	if role != "" {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(helperAuth.LocUserID, userID.String())
			c.Locals(helperAuth.LocUserRole, role)
			return c.Next()
		})
	}
	return app
}

// Envelope mirrors the JSON response shape of helper.Json*.
type Envelope struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code"`
	Errors    map[string][]string `json:"errors"`
	Data      json.RawMessage     `json:"data"`
}

// Do sends body (marshalled to JSON when not nil) and returns the status and
// the raw response body.
func Do(t testing.TB, app *fiber.App, method, path string, body any, headers ...string) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// DoEnvelope is Do plus decoding into Envelope, and Data into out when given.
func DoEnvelope(t testing.TB, app *fiber.App, method, path string, body any, out any) (int, Envelope) {
	t.Helper()

	status, raw := Do(t, app, method, path, body)
	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		require.NoError(t, json.Unmarshal(env.Data, out), string(env.Data))
	}
	return status, env
}
