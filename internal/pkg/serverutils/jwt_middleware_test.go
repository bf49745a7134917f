package serverutils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret, userId string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJwtMiddlewareUsesConfiguredSecret(t *testing.T) {
	app := fiber.New()
	app.Get("/me", JwtMiddleware("unit-secret"), func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"user_id": ctx.Locals("user_id")})
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "token signed with configured secret", authHeader: "Bearer " + signToken(t, "unit-secret", "u-123"), wantStatus: fiber.StatusOK},
		{name: "token signed with different secret", authHeader: "Bearer " + signToken(t, "other-secret", "u-123"), wantStatus: fiber.StatusUnauthorized},
		{name: "missing header", authHeader: "", wantStatus: fiber.StatusUnauthorized},
		{name: "not a bearer token", authHeader: "Basic abc", wantStatus: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == fiber.StatusOK {
				var body map[string]interface{}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, "u-123", body["user_id"])
			}
		})
	}
}
