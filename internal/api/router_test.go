package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/asnhub/asndash/internal/config"
	"github.com/asnhub/asndash/internal/dashboard"
	"github.com/asnhub/asndash/internal/employees"
	"github.com/asnhub/asndash/internal/identity"
	"github.com/asnhub/asndash/internal/logging"
	"github.com/asnhub/asndash/internal/reports"
	"github.com/asnhub/asndash/internal/units"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStorage struct{}

func (stubStorage) Put(context.Context, string, []byte, string) error {
	return nil
}

func (stubStorage) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://s3.local/" + key, nil
}

func newTestApp(t *testing.T) (*fiber.App, *Services) {
	t.Helper()

	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	er := employees.NewMemoryRepository()
	ur := units.NewMemoryRepository()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	s := &Services{
		Identity:  identity.NewService(identity.NewMemoryStore(), log),
		Employees: employees.NewService(er),
		Units:     units.NewService(ur, er),
		Dashboard: dashboard.NewService(dashboard.NewMemoryRepository(er, ur), log),
		Reports:   reports.NewService(er, ur, stubStorage{}, cfg, log),
	}

	app := fiber.New()
	SetupRoutes(app, s)
	return app, s
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func login(t *testing.T, app *fiber.App, username, password string) {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", fiber.Map{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login failed: %v", body)
}

func TestLoginSuccessAndFailure(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", fiber.Map{
		"username": "admin", "password": "admin123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "admin", data["role"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", fiber.Map{
		"username": "admin", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "incorrect password", body["message"])
}

func TestMeRequiresSession(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	login(t, app, "user", "user123")
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "user", data["username"])
	assert.Equal(t, "user", data["role"])
}

func TestLogoutClearsSession(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, "admin", "admin123")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestChangePasswordEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, "admin", "admin123")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/change-password", fiber.Map{
		"current_password": "wrong", "new_password": "newpass1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "incorrect password", body["message"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/change-password", fiber.Map{
		"current_password": "admin123", "new_password": "newpass1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", fiber.Map{
		"username": "admin", "password": "newpass1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestChangeUsernameEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, "admin", "admin123")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/change-username", fiber.Map{
		"password": "admin123", "new_username": "chief",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "chief", body["data"].(map[string]any)["username"])

	// old name is retired
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", fiber.Map{
		"username": "admin", "password": "admin123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", fiber.Map{
		"username": "chief", "password": "admin123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", body["data"].(map[string]any)["role"])
}

func TestUserRoutesRequireAdminRole(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, "user", "user123")

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/users/", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	login(t, app, "admin", "admin123")
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUserManagementFlow(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, "admin", "admin123")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/users/", fiber.Map{
		"username": "jdoe", "password": "secret1", "email": "jdoe@example.com", "name": "J. Doe",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/users/jdoe", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "jdoe", data["username"])
	assert.Equal(t, "user", data["role"])
	_, hasPassword := data["password"]
	assert.False(t, hasPassword)

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/users/", fiber.Map{
		"username": "jdoe", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "username already taken", body["message"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/users/jdoe", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", fiber.Map{
		"username": "jdoe", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestResetRequiresSuperadmin(t *testing.T) {
	app, _ := newTestApp(t)

	login(t, app, "admin", "admin123")
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/reset", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	login(t, app, "superadmin", "super123")
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/reset", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEmployeeCRUDEndpoints(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, "admin", "admin123")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/units/", fiber.Map{
		"code": "HR", "name": "Human Resources",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	unitID := body["data"].(map[string]any)["id"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/employees/", fiber.Map{
		"nip": "198001012005011001", "name": "Budi Santoso", "gender": "M",
		"rank": "III/a", "position": "Analyst", "unit_id": unitID,
		"employment_type": "PNS", "status": "active", "hire_date": "2020-07-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	empID := body["data"].(map[string]any)["id"].(string)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/employees/?search=budi", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["data"].(map[string]any)["total"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/employees/", fiber.Map{
		"nip": "bad", "name": "X",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// unit with employees cannot be deleted
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/units/"+unitID, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/employees/"+empID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/units/"+unitID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEmployeeWriteRequiresAdmin(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, "user", "user123")

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/employees/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/employees/", fiber.Map{
		"nip": "198001012005011001", "name": "Budi",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDashboardStatsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, "user", "user123")

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/dashboard/stats", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(0), data["total_employees"])
}

func TestExportRosterEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, "admin", "admin123")

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/reports/roster?format=csv", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "csv", data["format"])
	assert.Contains(t, data["url"], "https://s3.local/")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/reports/roster?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCleanupEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, "admin", "admin123")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/users/cleanup", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(0), data["cleaned"])
}
