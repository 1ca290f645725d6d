package response

import "github.com/gin-gonic/gin"

// Error writes a failure payload. Success payloads are written directly by
// the controllers since their shapes are part of the API contract.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}
