package router

import (
	"net/http"

	"github.com/Thenathanb/CourseMate-UH/internal/server/handlers"
	"github.com/Thenathanb/CourseMate-UH/internal/server/middleware"
	"github.com/gin-gonic/gin"
)

// New wires handlers and middleware into an HTTP router.
func New(handler *handlers.Handler, mw *middleware.Manager) http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), mw.RequestID(), mw.RequestLog())

	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	{
		professors := v1.Group("/professors")
		{
			professors.GET("/resolve", handler.ResolveProfessor)
			professors.GET("/hover", handler.HoverData)
		}

		cache := v1.Group("/cache")
		{
			cache.POST("/clear", handler.ClearCache)
		}
	}

	return router
}
