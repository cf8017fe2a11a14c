package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext is the authenticated identity attached to a request.
type AuthContext struct {
	Subject string
	Scopes  []string
}

// HasScope reports whether the context grants the required scope.
func (a *AuthContext) HasScope(required string) bool {
	for _, granted := range a.Scopes {
		if scopeAllows(granted, required) {
			return true
		}
	}
	return false
}

// GetAuthContext returns the auth context stored by Authenticate.
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}

// UnifiedAuthMiddleware accepts either a bearer token or an API key.
type UnifiedAuthMiddleware struct {
	tokens  TokenService
	apiKeys *APIKeyService
}

func NewUnifiedAuthMiddleware(tokens TokenService, apiKeys *APIKeyService) *UnifiedAuthMiddleware {
	return &UnifiedAuthMiddleware{tokens: tokens, apiKeys: apiKeys}
}

// Authenticate resolves the request identity from the Authorization header
// (Bearer token) or the X-API-Key header.
func (m *UnifiedAuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey := c.Get("X-API-Key"); apiKey != "" {
			claims, err := m.apiKeys.Validate(apiKey)
			if err != nil {
				return err
			}
			c.Locals(authContextKey, &AuthContext{Subject: claims.Subject, Scopes: claims.Scopes})
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrMissingCredentials()
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return ErrMissingCredentials().WithDetail("header", "expected Bearer scheme")
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			return err
		}
		c.Locals(authContextKey, &AuthContext{Subject: claims.Subject, Scopes: claims.Scopes})
		return c.Next()
	}
}

// RequireScope rejects requests whose identity lacks the scope.
func (m *UnifiedAuthMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingCredentials()
		}
		if !authCtx.HasScope(scope) {
			return ErrInsufficientScope().WithDetail("required", scope)
		}
		return c.Next()
	}
}
