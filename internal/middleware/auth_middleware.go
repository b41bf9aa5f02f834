package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// OwnerIDKey is the Gin context key under which VerifyToken stores the
// authenticated owner id.
const OwnerIDKey = "ownerID"

// ErrorResponse is a local definition for sending standardized error
// messages. It mirrors the one in internal/api to avoid import cycles.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AuthMiddleware issues and verifies the HS256 session tokens that carry
// the opaque owner identity. Everything past VerifyToken only ever sees
// the owner id; the core never touches a token.
type AuthMiddleware struct {
	secret []byte
	ttl    time.Duration
}

// NewAuthMiddleware creates an AuthMiddleware with the given signing
// secret and token lifetime.
func NewAuthMiddleware(secret string, ttl time.Duration) (*AuthMiddleware, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &AuthMiddleware{secret: []byte(secret), ttl: ttl}, nil
}

// IssueToken mints a signed session token for an owner id.
func (m *AuthMiddleware) IssueToken(ownerID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   ownerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken is a Gin middleware that validates the Bearer token from
// the Authorization header and sets the owner id in the context.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}

		ownerID, err := m.parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		c.Set(OwnerIDKey, ownerID)
		c.Next()
	}
}

func (m *AuthMiddleware) parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}
