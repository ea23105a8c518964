package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stash/internal/config"
	"stash/internal/handlers"
	"stash/internal/middleware"
	"stash/internal/models"
	"stash/internal/repositories"
	"stash/internal/services"
)

// setupTestApp wires the full route tree against an in-memory database, the
// same way main does, minus the message queue.
func setupTestApp(t *testing.T, cfg config.Config) (*fiber.App, repositories.ApiKeyRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	prefix := repositories.PartitionPrefix(cfg)
	require.NoError(t, repositories.Migrate(db, prefix))

	stores := make(map[string]repositories.Store, len(models.Categories()))
	for _, cat := range models.Categories() {
		stores[cat.Plural] = repositories.NewGormStore(db, cat, prefix)
	}
	apiKeyRepo := repositories.NewGormApiKeyRepository(db, prefix)
	logRepo := repositories.NewGormLogRepository(db, prefix)

	logService := services.NewLogService(logRepo, nil)
	cascadeRunner := services.NewCascadeRunner(stores, logService, nil)
	taggedService := services.NewTaggedService(stores)

	app := fiber.New()
	apiV1 := app.Group("/api/v1",
		middleware.RequestLogger(logService),
		middleware.ApiKeyRequired(apiKeyRepo, cfg),
	)
	for _, cat := range models.Categories() {
		service := services.NewCategoryService(cat, stores[cat.Plural], stores[models.TagCategory.Plural], cascadeRunner, nil)
		handlers.NewCategoryHandler(service).RegisterRoutes(apiV1)
	}
	handlers.NewLogHandler(logService).RegisterRoutes(apiV1)
	handlers.NewTaggedHandler(taggedService).RegisterRoutes(apiV1)

	return app, apiKeyRepo
}

func testingConfig() config.Config {
	return config.Config{Testing: true}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestCreateAndGetNote(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "POST", "/api/v1/notes", map[string]any{"contents": "remember the milk"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := decodeBody(t, resp)["id"].(string)
	require.NotEmpty(t, id)

	resp = doJSON(t, app, "GET", "/api/v1/notes/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "remember the milk", body["contents"])
	assert.Equal(t, id, body["id"])
}

func TestListNotesPagination(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	for _, contents := range []string{"first", "second", "third"} {
		resp := doJSON(t, app, "POST", "/api/v1/notes", map[string]any{"contents": contents})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, "GET", "/api/v1/notes?page=2&count=1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	notes := decodeBody(t, resp)["notes"].([]any)
	require.Len(t, notes, 1)
	assert.Equal(t, "second", notes[0].(map[string]any)["contents"])

	resp = doJSON(t, app, "GET", "/api/v1/notes?all=true", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody(t, resp)["notes"].([]any), 3)
}

func TestListRejectsNonIntegerPage(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "GET", "/api/v1/notes?page=abc", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request -- 'page' must be an integer", decodeBody(t, resp)["error"])
}

func TestCreateRejectsEmptyBody(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "POST", "/api/v1/notes", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Expected a json body but received none", decodeBody(t, resp)["error"])
}

func TestCreateRejectsUnexpectedField(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "POST", "/api/v1/notes", map[string]any{
		"contents": "hello",
		"flavour":  "strawberry",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request -- unexpected field 'flavour' in Note", decodeBody(t, resp)["error"])
}

func TestCreateRejectsMissingRequiredField(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "POST", "/api/v1/links", map[string]any{"name": "Example"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request -- missing field 'url' in Link", decodeBody(t, resp)["error"])
}

func TestGetUnknownIDReturns404(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "GET", "/api/v1/notes/no-such-id", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Could not find a Note with the ID 'no-such-id'", decodeBody(t, resp)["error"])
}

func TestUpdateReplacesRecord(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "POST", "/api/v1/notes", map[string]any{
		"contents": "before",
		"url":      "https://example.com",
	})
	id := decodeBody(t, resp)["id"].(string)

	resp = doJSON(t, app, "PUT", "/api/v1/notes/"+id, map[string]any{"contents": "after"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "after", body["contents"])
	assert.Equal(t, "", body["url"])
}

func TestDeleteNoteThenGet404(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "POST", "/api/v1/notes", map[string]any{"contents": "short-lived"})
	id := decodeBody(t, resp)["id"].(string)

	resp = doJSON(t, app, "DELETE", "/api/v1/notes/"+id, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/v1/notes/"+id, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDateZeroPadding(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "POST", "/api/v1/dates", map[string]any{
		"name":  "Birthday",
		"day":   "5",
		"month": "4",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := decodeBody(t, resp)["id"].(string)

	resp = doJSON(t, app, "GET", "/api/v1/dates/"+id, nil)
	body := decodeBody(t, resp)
	assert.Equal(t, "05", body["day"])
	assert.Equal(t, "04", body["month"])
	assert.Equal(t, "", body["year"])

	resp = doJSON(t, app, "POST", "/api/v1/dates", map[string]any{
		"name":  "Anniversary",
		"day":   "25",
		"month": "11",
	})
	id = decodeBody(t, resp)["id"].(string)

	resp = doJSON(t, app, "GET", "/api/v1/dates/"+id, nil)
	body = decodeBody(t, resp)
	assert.Equal(t, "25", body["day"])
	assert.Equal(t, "11", body["month"])
}

func TestDatesToday(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "GET", "/api/v1/dates/today", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No events occur today", decodeBody(t, resp)["error"])

	now := time.Now()
	resp = doJSON(t, app, "POST", "/api/v1/dates", map[string]any{
		"name":  "Today's event",
		"day":   strconv.Itoa(now.Day()),
		"month": strconv.Itoa(int(now.Month())),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/v1/dates/today", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	dates := decodeBody(t, resp)["dates"].([]any)
	require.Len(t, dates, 1)
	assert.Equal(t, "Today's event", dates[0].(map[string]any)["name"])
}

func TestDuplicateTagNameRejected(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "POST", "/api/v1/tags", map[string]any{"name": "family"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/v1/tags", map[string]any{"name": "family"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTaggingRequiresExistingTag(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "POST", "/api/v1/notes", map[string]any{
		"contents": "hello",
		"tags":     []string{"ghosts"},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Could not find a tag named [ghosts].  Please create the tag first.", decodeBody(t, resp)["error"])
}

func TestTagRenameCascades(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "POST", "/api/v1/tags", map[string]any{"name": "old-name"})
	tagID := decodeBody(t, resp)["id"].(string)

	resp = doJSON(t, app, "POST", "/api/v1/notes", map[string]any{
		"contents": "tagged note",
		"tags":     []string{"old-name"},
	})
	noteID := decodeBody(t, resp)["id"].(string)

	resp = doJSON(t, app, "PUT", "/api/v1/tags/"+tagID, map[string]any{"name": "new-name"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/v1/notes/"+noteID, nil)
	assert.Equal(t, []any{"new-name"}, decodeBody(t, resp)["tags"])
}

func TestTagDeleteCascades(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "POST", "/api/v1/tags", map[string]any{"name": "doomed"})
	tagID := decodeBody(t, resp)["id"].(string)

	resp = doJSON(t, app, "POST", "/api/v1/notes", map[string]any{
		"contents": "tagged note",
		"tags":     []string{"doomed"},
	})
	noteID := decodeBody(t, resp)["id"].(string)

	resp = doJSON(t, app, "DELETE", "/api/v1/tags/"+tagID, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/v1/notes/"+noteID, nil)
	assert.Equal(t, []any{}, decodeBody(t, resp)["tags"])
}

func TestTaggedEndpointGroupsByCategory(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "POST", "/api/v1/tags", map[string]any{"name": "shared"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, "POST", "/api/v1/notes", map[string]any{
		"contents": "note",
		"tags":     []string{"shared"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, "POST", "/api/v1/links", map[string]any{
		"name": "link",
		"url":  "https://example.com",
		"tags": []string{"shared"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/v1/tagged/shared", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, body["notes"].([]any), 1)
	assert.Len(t, body["links"].([]any), 1)
	assert.Len(t, body["dates"].([]any), 0)
	_, hasTagPartition := body["tags"]
	assert.False(t, hasTagPartition)
}

func TestRequestsAreLogged(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "POST", "/api/v1/notes", map[string]any{"contents": "hello"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, "GET", "/api/v1/notes/no-such-id", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/v1/logs?levels=error", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	logs := decodeBody(t, resp)["logs"].([]any)
	require.Len(t, logs, 1)
	entry := logs[0].(map[string]any)
	assert.Equal(t, models.TestUser, entry["user"])
	assert.Equal(t, "Error", entry["level"])
	details := entry["details"].(map[string]any)
	assert.Equal(t, "NotFoundError", details["error_class"])
	assert.Equal(t, float64(404), details["status"])
}

func TestLogQueryRejectsUnknownLevel(t *testing.T) {
	app, _ := setupTestApp(t, testingConfig())

	resp := doJSON(t, app, "GET", "/api/v1/logs?levels=loud", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRequestsRequireApiKey(t *testing.T) {
	app, apiKeyRepo := setupTestApp(t, config.Config{Testing: false})
	require.NoError(t, apiKeyRepo.Create(&models.ApiKey{Key: "secret", User: "alice"}))

	resp := doJSON(t, app, "GET", "/api/v1/notes", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "You are not authorized", decodeBody(t, resp)["error"])

	req := httptest.NewRequest("GET", "/api/v1/notes", nil)
	req.Header.Set("x-api-key", "wrong")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/v1/notes", nil)
	req.Header.Set("x-api-key", "secret")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRejectedRequestsAreLogged(t *testing.T) {
	app, apiKeyRepo := setupTestApp(t, config.Config{Testing: false})
	require.NoError(t, apiKeyRepo.Create(&models.ApiKey{Key: "secret", User: "alice"}))

	resp := doJSON(t, app, "GET", "/api/v1/notes", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/v1/logs?levels=error", nil)
	req.Header.Set("x-api-key", "secret")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	logs := decodeBody(t, resp)["logs"].([]any)
	require.Len(t, logs, 1)
	entry := logs[0].(map[string]any)
	assert.Contains(t, entry["message"], "You are not authorized")
	details := entry["details"].(map[string]any)
	assert.Equal(t, "UnauthorizedError", details["error_class"])
	assert.Equal(t, float64(401), details["status"])
}
