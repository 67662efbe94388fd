package response

import "github.com/gin-gonic/gin"

// Every endpoint answers in the same envelope: {"success":true,"data":...} or
// {"success":false,"error":{code,message}}. Error codes are the stable strings
// clients switch on (FILE_NOT_FOUND, ALREADY_MARKED, ...); messages are free
// text.

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
