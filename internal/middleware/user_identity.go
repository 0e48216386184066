package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/apperror"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/response"
)

// UserIdentity trusts the API gateway to have authenticated the caller and
// to forward the verified subject in X-User-ID. Requests without it are
// rejected before any handler runs.
func UserIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized,
				"Missing caller identity", nil)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
