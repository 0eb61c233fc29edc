// Package app provides the HTTP handlers for the auth service.
package app

import (
	"github.com/gin-gonic/gin"

	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/middleware"
)

// ----------------------------------------------------------------------------
// Route Registration
// ----------------------------------------------------------------------------

func (a *App) RegisterRoutes() *gin.Engine {
	router := gin.New()

	// Global middleware chain
	router.Use(gin.Recovery())      // Panic recovery
	router.Use(middleware.Logger()) // Custom slog logger
	router.Use(middleware.CORS())   // CORS support

	// Health check routes (public)
	health := router.Group("/health")
	{
		health.GET("/liveness", a.HandleLiveness)
		health.GET("/readiness", a.HandleReadiness)
	}

	auth := router.Group("/api/auth")
	{
		// Public routes
		auth.POST("/register", a.HandleRegister)
		auth.POST("/login", a.HandleLogin)
		auth.POST("/forgot-password", a.HandleForgotPassword)
		auth.POST("/reset-password", a.HandleResetPassword)

		// Protected routes (require a bearer token)
		protected := auth.Group("")
		protected.Use(middleware.Authenticate(a.tokens, a.store))
		{
			protected.GET("/me", a.HandleMe)
			protected.PUT("/changepassword", a.HandleChangePassword)
			protected.PUT("/me/avatar", a.HandleAvatarUpload)
		}
	}

	return router
}
