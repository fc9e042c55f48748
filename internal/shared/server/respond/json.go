package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload with the given status. Every analysis API
// response goes through here so the content type stays uniform.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 response; used for plain status payloads like health.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}
