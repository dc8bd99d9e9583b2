package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/booking-api/internal/policy"
	"github.com/clinicdesk/booking-api/pkg/auth"
	"github.com/clinicdesk/booking-api/pkg/httputil"
)

const contextActor = "actor"

type AuthMiddleware struct {
	jwtSvc auth.JWTService
}

func NewAuthMiddleware(jwtSvc auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

// Authenticate verifies the bearer token and stores the acting
// principal in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.NewErrorResponse("missing authorization header"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.NewErrorResponse("invalid authorization format"))
			return
		}

		claims, err := m.jwtSvc.ValidateAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.NewErrorResponse("invalid token"))
			return
		}

		c.Set(contextActor, policy.Actor{
			UserID:  claims.UserID,
			Email:   claims.Email,
			IsStaff: claims.IsStaff,
		})
		c.Next()
	}
}

// RequireStaff gates admin route groups. Fine-grained decisions still
// go through the policy in the service layer; this just keeps
// non-staff traffic out of /admin entirely.
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok || !actor.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, httputil.NewErrorResponse("staff privileges required"))
			return
		}
		c.Next()
	}
}

// ActorFromContext returns the authenticated principal set by
// Authenticate.
func ActorFromContext(c *gin.Context) (policy.Actor, bool) {
	v, exists := c.Get(contextActor)
	if !exists {
		return policy.Actor{}, false
	}
	actor, ok := v.(policy.Actor)
	return actor, ok
}
