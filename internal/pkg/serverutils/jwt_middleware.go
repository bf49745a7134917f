package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware guards a route with the same secret the auth service signs
// tokens with. An empty secret falls back to the insecure default so dev
// setups still round-trip.
func JwtMiddleware(secret string) fiber.Handler {
	if secret == "" {
		secret = "default_secret"
	}
	key := []byte(secret)

	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return key, nil
		})

		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid claims"})
		}

		ctx.Locals("user_id", claims["user_id"])
		return ctx.Next()
	}
}
