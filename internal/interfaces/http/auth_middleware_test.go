package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
	apphttp "github.com/lockstock/lockstock-api/internal/interfaces/http"
	pkgjwt "github.com/lockstock/lockstock-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testOrgID     = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "lockstock-test"
	testExpMin    = 60
)

// fakeMembershipRepo membresías en memoria, indexadas por (org, user).
type fakeMembershipRepo struct {
	roles map[string]string // "orgID/userID" -> rol
}

func (r *fakeMembershipRepo) Create(_ context.Context, m *entity.Membership) error {
	r.roles[m.OrgID+"/"+m.UserID] = m.Role
	return nil
}

func (r *fakeMembershipRepo) Get(_ context.Context, orgID, userID string) (*entity.Membership, error) {
	role, ok := r.roles[orgID+"/"+userID]
	if !ok {
		return nil, nil
	}
	return &entity.Membership{OrgID: orgID, UserID: userID, Role: role}, nil
}

func (r *fakeMembershipRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.Membership, error) {
	return nil, nil
}

// buildTestApp construye una aplicación Fiber mínima con la cadena completa:
// AuthMiddleware -> OrgMiddleware -> RequireMinRole -> handler dummy.
func buildTestApp(memberRole, minRole string) *fiber.App {
	repo := &fakeMembershipRepo{roles: map[string]string{}}
	if memberRole != "" {
		repo.roles[testOrgID+"/"+testUserID] = memberRole
	}
	resolver := authz.NewResolver(repo)

	app := fiber.New()
	app.Post("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.OrgMiddleware(resolver),
		apphttp.RequireMinRole(minRole),
		func(c *fiber.Ctx) error {
			actx := apphttp.GetAuthz(c)
			return c.JSON(fiber.Map{"ok": true, "role": actx.Role, "org_id": actx.OrgID})
		},
	)
	return app
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, "user@test.dev", testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader, orgHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if orgHeader != "" {
		req.Header.Set(apphttp.HeaderOrgID, orgHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireMinRole — comparación por rango
// ──────────────────────────────────────────────────────────────────────────────

// El actor con rango suficiente pasa; la comparación es por rango, no por igualdad.
func TestRequireMinRole_RangoSuficiente(t *testing.T) {
	cases := []struct {
		name              string
		memberRole, minRole string
	}{
		{"member en ruta member", entity.RoleMember, entity.RoleMember},
		{"manager en ruta member", entity.RoleManager, entity.RoleMember},
		{"owner en ruta manager", entity.RoleOwner, entity.RoleManager},
		{"viewer en ruta viewer", entity.RoleViewer, entity.RoleViewer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildTestApp(tc.memberRole, tc.minRole)
			resp := doRequest(t, app, tokenFor(t, testUserID), testOrgID)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.memberRole, body["role"])
			assert.Equal(t, testOrgID, body["org_id"])
		})
	}
}

// Rango insuficiente → HTTP 403 Forbidden.
func TestRequireMinRole_RangoInsuficiente(t *testing.T) {
	cases := []struct {
		name              string
		memberRole, minRole string
	}{
		{"viewer en ruta member", entity.RoleViewer, entity.RoleMember},
		{"member en ruta manager", entity.RoleMember, entity.RoleManager},
		{"manager en ruta owner", entity.RoleManager, entity.RoleOwner},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildTestApp(tc.memberRole, tc.minRole)
			resp := doRequest(t, app, tokenFor(t, testUserID), testOrgID)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusForbidden, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), "FORBIDDEN")
		})
	}
}

// Usuario sin membresía en la organización → HTTP 401.
func TestOrgMiddleware_SinMembresia_Retorna401(t *testing.T) {
	app := buildTestApp("", entity.RoleViewer)
	resp := doRequest(t, app, tokenFor(t, testUserID), testOrgID)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"usuario sin membresía no debe poder operar en la organización")
}

// Sin cabecera X-Org-ID → HTTP 400.
func TestOrgMiddleware_SinCabeceraOrg_Retorna400(t *testing.T) {
	app := buildTestApp(entity.RoleOwner, entity.RoleViewer)
	resp := doRequest(t, app, tokenFor(t, testUserID), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ORG")
}

// Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleOwner, entity.RoleViewer)
	resp := doRequest(t, app, "", testOrgID)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleOwner, entity.RoleViewer)
	resp := doRequest(t, app, "Bearer token.invalido.aqui", testOrgID)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, testUserID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "user@test.dev", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, email, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "user@test.dev", email)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "user@test.dev", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "user@test.dev", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
