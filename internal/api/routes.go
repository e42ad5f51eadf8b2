package api

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, container *Container) {
	middlewareService := container.MiddlewareService

	apiRoutes := router.Group("/api")

	apiRoutes.POST("/extract", middlewareService.AuthMiddleware, container.MediaService.Extract)
	apiRoutes.GET("/download/:handle", container.MediaService.Download)
	apiRoutes.GET("/history", middlewareService.AuthMiddleware, container.MediaService.History)
}
