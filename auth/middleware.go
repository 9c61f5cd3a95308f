package auth

import (
	"strings"

	"github.com/Abraxas-365/imagetext/errx"
	"github.com/gofiber/fiber/v2"
)

const claimsKey = "auth.claims"

// RequireBearer rejects requests without a valid "Authorization: Bearer"
// token and stores the claims in the request locals.
func RequireBearer(tokens *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			token = ""
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			return c.Status(errx.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromCtx returns the claims stored by RequireBearer
func ClaimsFromCtx(c *fiber.Ctx) (*JWTClaims, bool) {
	claims, ok := c.Locals(claimsKey).(*JWTClaims)
	return claims, ok
}
