package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"openclass/lms-backend/internal/dto"
	"openclass/lms-backend/internal/pkg"
	"openclass/lms-backend/internal/response"
)

// parseToken extracts and verifies the bearer token from the
// Authorization header.
func parseToken(c *gin.Context) (*pkg.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fmt.Errorf("malformed authorization header")
	}

	claims, err := pkg.ParseAccessToken(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token")
	}
	return claims, nil
}

// JWTAuth rejects the request with 401 unless a valid bearer token is
// presented, and stores the decoded identity in the gin context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c)
		if err != nil {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Unauthorized),
				response.WithErrorMessage(err.Error()),
			))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Name)
		c.Set("email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequireRoles gates a route to the given roles. Runs after JWTAuth and
// answers 403 when the authenticated role is not in the allow-list.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("user_role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Forbidden),
			response.WithErrorMessage("insufficient permissions"),
		))
		c.Abort()
	}
}

// Identity is the authenticated caller as stored by JWTAuth.
type Identity struct {
	UserID uint
	Name   string
	Email  string
	Role   string
}

// CurrentIdentity reads the identity JWTAuth stored in the context.
func CurrentIdentity(c *gin.Context) Identity {
	return Identity{
		UserID: c.GetUint("user_id"),
		Name:   c.GetString("user_name"),
		Email:  c.GetString("email"),
		Role:   c.GetString("user_role"),
	}
}
