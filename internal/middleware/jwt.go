package middleware // reusable HTTP middleware shared by all route groups

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kitswap/kitswap-backend/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the subject email and role claims into the request context.
// Handlers behind this middleware read them via c.Get("email") and
// c.Get("role"). Missing, malformed, tampered and expired tokens are all
// rejected with 401 before any business logic runs.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			email, role, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("email", email)
			c.Set("role", role)
			return next(c)
		}
	}
}

// PrincipalEmail extracts the authenticated account email stored by JWTAuth.
// The boolean is false when the request carries no authenticated principal.
func PrincipalEmail(c echo.Context) (string, bool) {
	v, ok := c.Get("email").(string)
	return v, ok && v != ""
}
