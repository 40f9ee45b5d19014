package response

import "github.com/gin-gonic/gin"

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

// Paginated wraps a list payload in the portal's pagination body:
// {data, total, page, pageSize, totalPages} inside the success envelope.
func Paginated(c *gin.Context, statusCode int, data interface{}, total int64, page, pageSize, totalPages int) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data": gin.H{
			"data":       data,
			"total":      total,
			"page":       page,
			"pageSize":   pageSize,
			"totalPages": totalPages,
		},
	})
}
