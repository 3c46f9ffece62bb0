package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"client_tracker_backend/internal/repositories"
	"client_tracker_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DevelopmentMode marks requests whose error responses may carry internal details.
func DevelopmentMode(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.DevelopmentModeKey, enabled)
		c.Next()
	}
}

// ErrorHandler converts errors attached with c.Error into the error envelope
// when no handler has written a response yet.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		utils.LogError(err, "Unhandled request error")
		utils.RespondWithError(c, apiErrorFor(c, err))
	}
}

// Recovery turns a panic into a 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		err := fmt.Errorf("panic: %v", recovered)
		utils.LogError(err, "Recovered from panic")
		utils.RespondWithError(c, internalError(c, err))
	})
}

func apiErrorFor(c *gin.Context, err error) *utils.APIError {
	switch {
	case errors.Is(err, repositories.ErrDuplicateKey):
		return utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeDuplicateEntry, "Duplicate entry", "A record with this data already exists")
	case errors.Is(err, repositories.ErrNotFound):
		return utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Record not found", "")
	default:
		return internalError(c, err)
	}
}

func internalError(c *gin.Context, err error) *utils.APIError {
	details := "Something went wrong"
	if c.GetBool(utils.DevelopmentModeKey) {
		details = err.Error()
	}
	return utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error", details)
}
