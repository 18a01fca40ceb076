package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dreyes/auth-service/pkg/response"
	"github.com/dreyes/auth-service/pkg/token"
)

const CtxUserEmailKey = "userEmail"

// BearerAuth verifies the Authorization bearer token and injects the
// subject email into the context. Pure token verification, no server-side
// session lookup.
func BearerAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		email, err := tokens.VerifyAndExtractSubject(strings.TrimSpace(raw))
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, err.Error())
			return
		}
		c.Set(CtxUserEmailKey, email)
		c.Next()
	}
}
