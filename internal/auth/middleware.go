package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LoginPath is where guests are sent when they hit a protected route.
const LoginPath = "/auth/login"

// RequireUser validates bearer tokens and stores user_id and username
// in locals. Guests (missing or invalid token) are redirected to the
// login page with the original path in the next parameter.
func RequireUser(secret string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get("Authorization"))
		if token == "" {
			return redirectToLogin(c)
		}

		parsed, err := parseMiddlewareClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
			return secretBytes, nil
		})
		if err != nil {
			return redirectToLogin(c)
		}

		claims, ok := parsed.Claims.(*Claims)
		if !ok || !parsed.Valid {
			return redirectToLogin(c)
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		return c.Next()
	}
}

var parseMiddlewareClaimsFn = jwt.ParseWithClaims

func redirectToLogin(c *fiber.Ctx) error {
	return c.Redirect(LoginPath+"?next="+c.Path(), fiber.StatusFound)
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
