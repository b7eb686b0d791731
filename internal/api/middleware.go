package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"workout-log/internal/domain"
)

// Key under which the resolved identity is memoized in the request context.
const ContextIdentityKey = "identity"

// jwtClaims mirrors the payload written by authService.generateJWT.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// AuthMiddleware is the identity gate: it validates the bearer token once per
// request and stores the identity string in the request context. Handlers
// read the memoized value instead of re-parsing the token. The gin context
// lives exactly as long as the request, so nothing leaks across requests.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		// A validated session without an identity still fails closed.
		if !token.Valid || claims.UserID == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(ContextIdentityKey, claims.UserID)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondServiceError maps the service failure taxonomy to HTTP status.
// Forbidden is deliberately presented as 404 so workout ids cannot be probed
// for existence; the two stay distinct errors internally.
func respondServiceError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": vErr.Error(),
			"field": vErr.Field,
		})
	case errors.Is(err, domain.ErrUnauthorized):
		abortWithError(c, http.StatusUnauthorized, "Authentication required.")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrForbidden):
		abortWithError(c, http.StatusNotFound, "Not found.")
	default:
		abortWithError(c, http.StatusInternalServerError, "Internal server error.")
	}
}

// identityFromContext returns the memoized identity set by AuthMiddleware.
func identityFromContext(c *gin.Context) (string, error) {
	raw, exists := c.Get(ContextIdentityKey)
	if !exists {
		return "", errors.New("identity not found in context")
	}
	identity, ok := raw.(string)
	if !ok || identity == "" {
		return "", errors.New("invalid identity in context")
	}
	return identity, nil
}
