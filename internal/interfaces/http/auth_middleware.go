package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/application/dto"
	"github.com/lockstock/lockstock-api/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalUserID    = "user_id"
	LocalUserEmail = "user_email"
	LocalAuthz     = "authz"
)

// HeaderOrgID cabecera con la organización activa de la petición.
const HeaderOrgID = "X-Org-ID"

// AuthMiddleware valida el Bearer Token JWT y extrae la identidad a c.Locals.
// El token solo identifica al usuario: la organización y el rol se resuelven
// después, en OrgMiddleware.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, email, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserEmail, email)
		return c.Next()
	}
}

// OrgMiddleware resuelve la membresía del usuario en la organización de la
// cabecera X-Org-ID y deja el contexto de autorización en c.Locals.
// Sin cabecera: 400. Sin membresía: 401.
func OrgMiddleware(resolver *authz.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID := c.Get(HeaderOrgID)
		if orgID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ORG", Message: "cabecera X-Org-ID requerida"})
		}
		actx, err := resolver.Resolve(c.Context(), orgID, GetUserID(c))
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalAuthz, actx)
		return c.Next()
	}
}

// RequireMinRole rechaza con 403 cuando el rango del actor no alcanza el mínimo.
func RequireMinRole(minRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actx := GetAuthz(c)
		if actx == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "contexto de organización ausente"})
		}
		if err := actx.RequireMinRole(minRole); err != nil {
			return writeError(c, err)
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetAuthz devuelve el contexto de autorización (después de OrgMiddleware).
func GetAuthz(c *fiber.Ctx) *authz.Context {
	v := c.Locals(LocalAuthz)
	if v == nil {
		return nil
	}
	actx, _ := v.(*authz.Context)
	return actx
}
