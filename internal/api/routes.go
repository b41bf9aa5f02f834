package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"credvault-backend/internal/middleware"
)

// SetupRouter configures all application routes. Everything under
// /api/v1/projects requires a valid session token; the auth endpoints and
// the health check do not.
func SetupRouter(
	router *gin.Engine,
	authHandler *AuthHandler,
	projectHandler *ProjectHandler,
	authMW *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	projects := v1.Group("/projects")
	projects.Use(authMW.VerifyToken())
	{
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)
		projects.GET("/:projectId", projectHandler.GetProject)
		projects.PUT("/:projectId", projectHandler.UpdateProject)
		projects.DELETE("/:projectId", projectHandler.DeleteProject)

		users := projects.Group("/:projectId/users")
		{
			users.POST("", projectHandler.AddUser)
			users.PUT("/:userId", projectHandler.UpdateUser)
			users.DELETE("/:userId", projectHandler.DeleteUser)

			creds := users.Group("/:userId/credentials")
			{
				creds.POST("", projectHandler.AddCredential)
				creds.PUT("/:credId", projectHandler.UpdateCredential)
				creds.DELETE("/:credId", projectHandler.DeleteCredential)
				creds.POST("/:credId/rotate", projectHandler.RotateCredential)
				creds.GET("/:credId/reveal", projectHandler.RevealCredential)
			}
		}
	}
}
