package response

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-result-portal/internal/dto"
	appErrors "github.com/noah-isme/sma-result-portal/pkg/errors"
)

// JSON sends data as the raw response body.
func JSON(c *gin.Context, status int, data interface{}) {
	noStore(c)
	c.JSON(status, data)
}

// Error converts err to its HTTP status and writes {"error": message}.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	c.JSON(appErr.Status, dto.ErrorBody{Error: appErr.Message})
}

// AbortError writes the error body and stops the handler chain.
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
