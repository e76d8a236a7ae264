package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/questpath-backend/internal/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondAppError maps a taxonomy error to its HTTP status. Internal
// errors hide their cause from the client.
func RespondAppError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	status := statusForCode(code)

	if code == apperr.CodeRateLimited {
		if retryAfter := apperr.RetryAfterOf(err); retryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		}
	}
	if code == apperr.CodeInternal {
		RespondError(c, status, string(code), errors.New("internal server error"))
		return
	}

	// Strip the code prefix and wrapped cause from the client message.
	var e *apperr.Error
	if errors.As(err, &e) {
		RespondError(c, status, string(code), errors.New(e.Message))
		return
	}
	RespondError(c, status, string(code), err)
}

func statusForCode(code apperr.Code) int {
	switch code {
	case apperr.CodeValidation:
		return http.StatusBadRequest
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodePermissionDenied:
		return http.StatusForbidden
	case apperr.CodeGeneratorUnavailable:
		return http.StatusInternalServerError
	case apperr.CodeRateLimited:
		return http.StatusTooManyRequests
	case apperr.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperr.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
