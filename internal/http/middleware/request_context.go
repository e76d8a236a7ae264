package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/questpath-backend/internal/requestdata"
)

// AttachRequestContext seeds every request with a request id and the
// caller's IP, echoed back in X-Request-ID.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		rd := &requestdata.RequestData{
			RequestID: requestID,
			ClientIP:  c.ClientIP(),
		}
		ctx := requestdata.WithRequestData(c.Request.Context(), rd)
		c.Request = c.Request.WithContext(ctx)

		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}
