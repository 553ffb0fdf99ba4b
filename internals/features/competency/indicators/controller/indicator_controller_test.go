package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kompetensi_backend/internals/databases"
	compModel "kompetensi_backend/internals/features/competency/competencies/model"
	compService "kompetensi_backend/internals/features/competency/competencies/service"
	m "kompetensi_backend/internals/features/competency/indicators/model"
	"kompetensi_backend/internals/features/competency/indicators/service"
	helper "kompetensi_backend/internals/helpers"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db := database.NewTestDB(t, &compModel.CompetencyModel{}, &m.IndicatorModel{})
	svc := service.New(db, compService.New(db, nil), service.Options{}, nil)
	ctl := NewIndicatorController(svc)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	g := app.Group("/api/indicators")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestDanglingCompetencyRendersNullName(t *testing.T) {
	app := newApp(t)
	compID := uuid.NewString()

	code, body := call(t, app, http.MethodPost, "/api/indicators",
		`{"indicator_competency_id":"`+compID+`","indicator_name":"N","indicator_description":"D"}`)
	require.Equal(t, fiber.StatusCreated, code)
	data := body["data"].(map[string]any)
	v, ok := data["indicator_competency_name"]
	assert.True(t, ok)
	assert.Nil(t, v)

	code, body = call(t, app, http.MethodGet, "/api/indicators?competency_id="+compID, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])
}

func TestListRejectsBadCompetencyFilter(t *testing.T) {
	app := newApp(t)
	code, body := call(t, app, http.MethodGet, "/api/indicators?competency_id=abc", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
}
