package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/rituday/pkg/helpers"
	"github.com/oksasatya/rituday/pkg/response"
)

// Context keys set by BearerAuth.
const (
	CtxUserEmailKey = "userEmail"
	CtxUserNameKey  = "userName"
)

// BearerAuth validates the "Authorization: Bearer <token>" header and sets
// userEmail and userName in the Gin context. A missing or invalid header
// aborts with 401.
func BearerAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwt.ParseBearer(c.GetHeader("Authorization"))
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, authMessage(err))
			return
		}
		c.Set(CtxUserEmailKey, claims.Email)
		c.Set(CtxUserNameKey, claims.Name)
		c.Next()
	}
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, helpers.ErrMissingToken):
		return helpers.ErrMissingToken.Error()
	case errors.Is(err, helpers.ErrTokenExpired):
		return helpers.ErrTokenExpired.Error()
	default:
		return helpers.ErrTokenMalformed.Error()
	}
}
