package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, message string, extra gin.H) {
	body := gin.H{"status": "success", "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(code, body)
}

func JSONError(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, gin.H{"status": "error", "error": errCode, "message": message})
}
