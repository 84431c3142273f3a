package middleware

import (
	"fmt"
	"os"
	"strings"
	"time"

	"quickzone-backend/constants"
	"quickzone-backend/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SignToken issues an HS256 token carrying the user's identity and
// permission strings. Expiry defaults to 24h, overridable with
// JWT_EXPIRY_HOURS.
func SignToken(claims jwt.MapClaims) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET is not set")
	}

	expiryHours := 24
	if v := os.Getenv("JWT_EXPIRY_HOURS"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &expiryHours); err != nil {
			return "", fmt.Errorf("invalid JWT_EXPIRY_HOURS: %w", err)
		}
	}
	claims["exp"] = time.Now().Add(time.Duration(expiryHours) * time.Hour).Unix()
	claims["iat"] = time.Now().Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyJWT verifies an HS256 token and returns its claims.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid JWT token")
}

func hasPermission(jwtToken string, requiredPermissions []string) (jwt.MapClaims, bool) {
	claims, err := VerifyJWT(jwtToken)
	if err != nil {
		return nil, false
	}

	// If "any" is passed, just verify the token without checking specific permissions
	for _, requiredPerm := range requiredPermissions {
		if requiredPerm == constants.PermAny {
			return claims, true
		}
	}

	userPermissions, ok := claims["permissions"].([]interface{})
	if !ok {
		return claims, false
	}

	permissionSet := make(map[string]bool)
	for _, p := range userPermissions {
		if perm, ok := p.(string); ok {
			permissionSet[perm] = true
		}
	}

	for _, requiredPerm := range requiredPermissions {
		if permissionSet[requiredPerm] {
			return claims, true
		}
	}

	return claims, false
}

// IsAuthenticated is a middleware that checks for a valid JWT token
func IsAuthenticated(requiredPermissions []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			// Validate Bearer Token
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status": "error",
					"error":  "Invalid authorization header format",
				})
			}
			token = tokenParts[1]
		} else {
			// Try to get token from cookie as fallback
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status": "error",
					"error":  "Authorization token missing",
				})
			}
		}

		decodedClaims, hasAccess := hasPermission(token, requiredPermissions)
		if !hasAccess {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "error": "Insufficient permissions"})
		}

		if decodedClaims["email"] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{Message: "Session expired. Login again.", Status: fiber.StatusUnauthorized})
		}

		c.Locals("user", map[string]interface{}(decodedClaims))

		return c.Next()
	}
}

// RequirePermissions is a helper function that creates a middleware with specific permissions
func RequirePermissions(permissions ...string) fiber.Handler {
	return IsAuthenticated(permissions)
}

// RequireAnyPermission allows access if user has any of the specified permissions
func RequireAnyPermission(permissions ...string) fiber.Handler {
	allPerms := append(permissions, constants.PermAny)
	return IsAuthenticated(allPerms)
}

// RequireAuthentication only requires valid authentication without specific permissions
func RequireAuthentication() fiber.Handler {
	return IsAuthenticated([]string{constants.PermAny})
}

// GetUserPermissions returns all user permissions from context
func GetUserPermissions(c *fiber.Ctx) map[string]bool {
	permissionSet := make(map[string]bool)

	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return permissionSet
	}

	userPermissions, ok := claims["permissions"].([]interface{})
	if !ok {
		return permissionSet
	}

	for _, p := range userPermissions {
		if perm, ok := p.(string); ok {
			permissionSet[perm] = true
		}
	}

	return permissionSet
}

// HasAnyPermission checks if the current user holds any of the given permissions
func HasAnyPermission(c *fiber.Ctx, permissions ...string) bool {
	userPermissions := GetUserPermissions(c)
	for _, permission := range permissions {
		if userPermissions[permission] {
			return true
		}
	}
	return false
}
