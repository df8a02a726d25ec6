package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"medistore/internal/apperr"
	"medistore/internal/auth"
	"medistore/internal/models"
)

// Authenticate requires a valid bearer token and puts its identity into the
// request context.
func Authenticate(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, _ := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
		token = strings.TrimSpace(token)
		if !strings.EqualFold(scheme, "Bearer") || token == "" {
			fail(c, apperr.New(apperr.Unauthenticated, "No token provided"))
			return
		}
		id, err := tokens.Validate(token)
		if err != nil {
			fail(c, err)
			return
		}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// RequireRole lets the request through only if the caller has one of roles.
// It must run after Authenticate.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, found := auth.IdentityFrom(c.Request.Context())
		if !found {
			fail(c, apperr.New(apperr.Unauthenticated, "Unauthorized"))
			return
		}
		if !id.HasRole(roles...) {
			fail(c, apperr.New(apperr.Forbidden, "Forbidden: You don't have access"))
			return
		}
		c.Next()
	}
}

func identity(c *gin.Context) auth.Identity {
	id, _ := auth.IdentityFrom(c.Request.Context())
	return id
}
