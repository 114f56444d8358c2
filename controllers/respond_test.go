package controllers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/logging"
	"github.com/meinhoongagan/booking-marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestParamID(t *testing.T) {
	app := fiber.New()
	app.Get("/things/:id", func(c *fiber.Ctx) error {
		id, err := ParamID(c, "id")
		if err != nil {
			return Fail(c, logging.Nop(), err)
		}
		return c.JSON(fiber.Map{"id": id})
	})

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":42}`, body)

	for _, raw := range []string{"0", "-1", "abc"} {
		status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/things/"+raw, nil))
		assert.Equal(t, http.StatusBadRequest, status, raw)
		assert.Contains(t, body, "invalid_argument")
	}
}

func TestQueryID(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		id, ok, err := QueryID(c, "consumerId")
		if err != nil {
			return Fail(c, logging.Nop(), err)
		}
		return c.JSON(fiber.Map{"id": id, "ok": ok})
	})

	_, body := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.JSONEq(t, `{"id":0,"ok":false}`, body)

	_, body = do(t, app, httptest.NewRequest(http.MethodGet, "/?consumerId=7", nil))
	assert.JSONEq(t, `{"id":7,"ok":true}`, body)

	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/?consumerId=x", nil))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestParseBodyKeepsDataFormat(t *testing.T) {
	var captured error
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var out struct {
			Days models.WorkingDays `json:"workingDays"`
		}
		captured = ParseBody(c, &out)
		return c.SendStatus(fiber.StatusNoContent)
	})

	post := func(body string) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		do(t, app, req)
	}

	post(`{"workingDays":{"funday":true}}`)
	assert.True(t, errors.Is(captured, apperr.ErrDataFormat))

	post(`{"workingDays":`)
	assert.True(t, errors.Is(captured, apperr.ErrInvalidArgument))

	post(`{"workingDays":{"monday":true}}`)
	assert.NoError(t, captured)
}

func TestFailMasksInternalErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Fail(c, logging.Nop(), errors.New("pq: connection refused"))
	})

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, body, "pq:")
	assert.Contains(t, body, "internal server error")
}
