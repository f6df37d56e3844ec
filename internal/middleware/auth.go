package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/auth"
)

// Context keys for storing authenticated user data
// #INTEGRATION_POINT: Handlers extract user data using these keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyClaims = "claims"
)

// Custom errors
var (
	ErrAuthHeaderMissing = errors.New("authorization header is required")
	ErrAuthHeaderFormat  = errors.New("authorization header format must be Bearer {token}")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrInvalidUserID     = errors.New("token does not carry a valid user id")
)

// TokenValidator is the part of auth.JWTService the middleware needs
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware validates JWT tokens and extracts the user id
// #IMPLEMENTATION_DECISION: Bearer token authentication; there are no roles to check
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, ErrAuthHeaderMissing.Error())
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, ErrAuthHeaderFormat.Error())
			return
		}

		claims, err := validator.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			message := ErrInvalidToken.Error()
			if errors.Is(err, auth.ErrTokenExpired) {
				message = "token has expired"
			}
			abortUnauthorized(c, message)
			return
		}

		// #DATA_ASSUMPTION: Assessments are owned by ObjectID user ids
		userID, err := primitive.ObjectIDFromHex(claims.Identity())
		if err != nil {
			abortUnauthorized(c, ErrInvalidUserID.Error())
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyUserID, userID)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "unauthorized",
		"message": message,
	})
}

// GetUserID extracts the user ID from context
func GetUserID(c *gin.Context) (primitive.ObjectID, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return primitive.NilObjectID, false
	}
	userID, ok := val.(primitive.ObjectID)
	return userID, ok
}

// GetClaims extracts the full JWT claims from context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*auth.Claims)
	return claims, ok
}
