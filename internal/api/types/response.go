package types

import "github.com/gin-gonic/gin"

// SendErrorResponse writes the uniform failure envelope. Every error leaving
// the API goes through here.
func SendErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
