package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/constants"
	"github.com/taskplatform/task-platform-api/internal/models"
	"github.com/taskplatform/task-platform-api/internal/policy"
	"github.com/taskplatform/task-platform-api/internal/response"
)

// RequireAuth validates the Authorization bearer token and stores the
// caller's id and role in the request context.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "Missing or malformed authorization header")
			c.Abort()
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}
		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			response.Unauthorized(c, "Invalid token subject")
			c.Abort()
			return
		}
		roleClaim, _ := claims["role"].(string)
		role := models.Role(roleClaim)
		if !role.Valid() {
			response.Unauthorized(c, "Invalid token role")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUserRole, role)
		c.Next()
	}
}

// CurrentActor reads the authenticated caller from the request context.
func CurrentActor(c *gin.Context) (policy.Actor, bool) {
	rawID, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return policy.Actor{}, false
	}
	rawRole, ok := c.Get(constants.ContextKeyUserRole)
	if !ok {
		return policy.Actor{}, false
	}
	id, ok := rawID.(uuid.UUID)
	if !ok {
		return policy.Actor{}, false
	}
	role, ok := rawRole.(models.Role)
	if !ok {
		return policy.Actor{}, false
	}
	return policy.Actor{ID: id, Role: role}, true
}
