package utilities

import (
	"github.com/gin-gonic/gin"
)

type GenericResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func Response(ctx *gin.Context, statusCode int, success bool, data interface{}, message string) {
	response := GenericResponse{
		Success: success,
		Data:    data,
		Message: message,
	}

	ctx.JSON(statusCode, response)
}

// Error writes the flat error shape used by the extract and download
// endpoints.
func Error(ctx *gin.Context, statusCode int, message string) {
	ctx.JSON(statusCode, gin.H{"error": message})
}
