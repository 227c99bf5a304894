package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Bodegas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Bodegas-api/pkg/jwt"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "u-supervisor"
	testCompanyID = "c-1"
	testIssuer    = "bodegas-api-test"
	testExpMin    = 60
)

// guardedApp expone GET /guarded detrás de AuthMiddleware + RequireRole(roles...)
// y devuelve el Actor que verían los casos de uso.
func guardedApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded",
		apphttp.AuthMiddleware(testJWTSecret, testIssuer),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			a := apphttp.ActorFrom(c)
			return c.JSON(fiber.Map{"user_id": a.UserID, "company_id": a.CompanyID, "role": a.Role})
		},
	)
	return app
}

func roleBearer(t *testing.T, role string, expMinutes int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, testIssuer, expMinutes)
	require.NoError(t, err)
	return "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, authorization string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body := map[string]string{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

// ─── RequireRole ──────────────────────────────────────────────────────────────

func TestRequireRole_PorRol(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		role    string
		status  int
		code    string
	}{
		{"manager en ruta de reportes", []string{entity.RoleManager}, entity.RoleManager, http.StatusOK, ""},
		{"supervisor en ruta de supervisor o manager", []string{entity.RoleManager, entity.RoleSupervisor}, entity.RoleSupervisor, http.StatusOK, ""},
		{"vendor en ruta de reportes", []string{entity.RoleManager}, entity.RoleVendor, http.StatusForbidden, "FORBIDDEN"},
		{"admin fuera de la lista", []string{entity.RoleVendor}, entity.RoleAdmin, http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{entity.RoleManager}, "", http.StatusUnauthorized, "MISSING_ROLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, guardedApp(tt.allowed...), roleBearer(t, tt.role, testExpMin))
			assert.Equal(t, tt.status, status)
			if tt.code != "" {
				assert.Equal(t, tt.code, body["code"])
			}
		})
	}
}

// ─── AuthMiddleware ───────────────────────────────────────────────────────────

func TestAuthMiddleware_ActorDesdeClaims(t *testing.T) {
	status, body := get(t, guardedApp(entity.RoleSupervisor), roleBearer(t, entity.RoleSupervisor, testExpMin))

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, entity.RoleSupervisor, body["role"])
}

func TestAuthMiddleware_TokenRechazado(t *testing.T) {
	foreign, err := pkgjwt.Generate("otro-secreto", testUserID, testCompanyID, entity.RoleManager, testIssuer, testExpMin)
	require.NoError(t, err)
	otherIssuer, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, entity.RoleManager, "otro-issuer", testExpMin)
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		code          string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema distinto", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"firmado con otro secreto", "Bearer " + foreign, "INVALID_TOKEN"},
		{"otro emisor", "Bearer " + otherIssuer, "INVALID_TOKEN"},
		{"expirado", roleBearer(t, entity.RoleManager, -5), "INVALID_TOKEN"},
	}
	app := guardedApp(entity.RoleManager)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, app, tt.authorization)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestAuthMiddleware_CuerpoDeError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	resp, err := guardedApp(entity.RoleManager).Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MISSING_TOKEN", body.Code)
	assert.NotEmpty(t, body.Message)
}
