package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/observability"
	"github.com/emsworks/employment-service/internal/repository"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code, "details": de.Details}})
		},
	})
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestParsePage(t *testing.T) {
	cases := []struct {
		query string
		want  repository.Page
	}{
		{"", repository.Page{Limit: 20, Offset: 0}},
		{"?page=3&page_size=10", repository.Page{Limit: 10, Offset: 20}},
		{"?page=0&page_size=-5", repository.Page{Limit: 20, Offset: 0}},
		{"?page=2&page_size=500", repository.Page{Limit: 100, Offset: 100}},
		{"?page=abc", repository.Page{Limit: 20, Offset: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			app := newApp()
			var got repository.Page
			app.Get("/", func(c *fiber.Ctx) error {
				got = parsePage(c)
				return c.JSON(fiber.Map{})
			})
			get(t, app, "/"+tc.query)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestQueryEnum(t *testing.T) {
	app := newApp()
	app.Get("/", func(c *fiber.Ctx) error {
		status, err := queryEnum[domain.LeaveStatus](c, "status")
		if err != nil {
			return err
		}
		if status == nil {
			return c.JSON(fiber.Map{"status": nil})
		}
		return c.JSON(fiber.Map{"status": *status})
	})

	_, body := get(t, app, "/")
	assert.Nil(t, body["status"])

	_, body = get(t, app, "/?status=Approved")
	assert.Equal(t, "Approved", body["status"])

	resp, body := get(t, app, "/?status=Maybe")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	details := body["error"].(map[string]any)["details"].(map[string]any)
	assert.Contains(t, details["status"], "Maybe")
}

func TestQueryDateAndBool(t *testing.T) {
	app := newApp()
	app.Get("/", func(c *fiber.Ctx) error {
		from, err := queryDate(c, "from")
		if err != nil {
			return err
		}
		active, err := queryBool(c, "active")
		if err != nil {
			return err
		}
		out := fiber.Map{}
		if from != nil {
			out["from"] = from.Format(domain.DateLayout)
		}
		if active != nil {
			out["active"] = *active
		}
		return c.JSON(out)
	})

	_, body := get(t, app, "/?from=2024-02-29&active=false")
	assert.Equal(t, "2024-02-29", body["from"])
	assert.Equal(t, false, body["active"])

	resp, _ := get(t, app, "/?from=29-02-2024")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, app, "/?active=sometimes")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParseTaskInput_DueDate(t *testing.T) {
	app := newApp()
	app.Post("/", func(c *fiber.Ctx) error {
		input, err := parseTaskInput(c)
		if err != nil {
			return err
		}
		out := fiber.Map{"clear": input.ClearDue}
		if input.DueDate != nil {
			out["due"] = input.DueDate.Format(domain.DateLayout)
		}
		return c.JSON(out)
	})

	post := func(body string) (*http.Response, map[string]any) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		decoded := map[string]any{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
		return resp, decoded
	}

	_, body := post(`{"title":"Ship it","due_date":"2024-06-01"}`)
	assert.Equal(t, "2024-06-01", body["due"])
	assert.Equal(t, false, body["clear"])

	_, body = post(`{"due_date":""}`)
	assert.Equal(t, true, body["clear"])
	assert.NotContains(t, body, "due")

	_, body = post(`{"title":"No change"}`)
	assert.Equal(t, false, body["clear"])

	resp, _ := post(`{"due_date":"tomorrow"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestActorFrom_MissingActor(t *testing.T) {
	app := newApp()
	app.Get("/", func(c *fiber.Ctx) error {
		_, err := actorFrom(c)
		return err
	})
	resp, body := get(t, app, "/")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["error"].(map[string]any)["code"])
}

func TestHealthReady(t *testing.T) {
	healthy := NewHealthHandler("ems", "test", map[string]Pinger{
		"postgres": stubPinger{},
		"redis":    stubPinger{},
	}, observability.NewMetrics())
	app := newApp()
	app.Get("/ready", healthy.Ready)

	resp, body := get(t, app, "/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body["status"])

	degraded := NewHealthHandler("ems", "test", map[string]Pinger{
		"postgres": stubPinger{},
		"redis":    stubPinger{err: errors.New("connection refused")},
	}, nil)
	app = newApp()
	app.Get("/ready", degraded.Ready)

	resp, body = get(t, app, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", errBody["code"])
	assert.Equal(t, "connection refused", errBody["details"].(map[string]any)["redis"])
	assert.Equal(t, "ok", errBody["details"].(map[string]any)["postgres"])
}
