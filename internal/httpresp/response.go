package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes the success envelope: {"success": true, ...payload}.
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Result reports the outcome of a write operation. Rule violations are
// delivered with status 200 and success=false.
func Result(c *gin.Context, success bool, message string, extra gin.H) {
	body := gin.H{"success": success, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// List returns data under key, never as JSON null.
func List[T any](c *gin.Context, key string, data []T) {
	if data == nil {
		data = []T{}
	}
	OK(c, gin.H{key: data})
}
