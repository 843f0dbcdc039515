package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-admin-api/internal/models"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
	"github.com/noah-isme/lms-admin-api/pkg/response"
)

// contextAdminKey is the gin context key storing the authenticated admin.
const contextAdminKey = "currentAdmin"

// SessionAuthenticator resolves a bearer token to an admin.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*models.AdminIdentity, error)
}

// Session protects routes by requiring a valid session token.
func Session(auth SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}
		admin, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Abort(c, err)
			return
		}
		c.Set(contextAdminKey, admin)
		c.Next()
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentAdmin returns the admin attached by Session.
func CurrentAdmin(c *gin.Context) (*models.AdminIdentity, bool) {
	value, exists := c.Get(contextAdminKey)
	if !exists {
		return nil, false
	}
	admin, ok := value.(*models.AdminIdentity)
	return admin, ok && admin != nil
}
