package routes

import (
	"net/http"

	"codezest/handlers"
	"codezest/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	moduleHandler *handlers.ModuleHandler,
	materialHandler *handlers.MaterialHandler,
	attemptHandler *handlers.AttemptHandler,
	languageHandler *handlers.LanguageHandler,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// User profile
			protected.GET("/auth/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
			protected.PUT("/profile/password", authHandler.ChangePassword)

			// Quiz routes
			quizzes := protected.Group("/quizzes")
			{
				quizzes.GET("", quizHandler.ListQuizzes)
				quizzes.POST("", quizHandler.CreateQuiz)
				quizzes.GET("/:id", quizHandler.GetQuizByID)
				quizzes.PUT("/:id", quizHandler.UpdateQuiz)
				quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
				quizzes.POST("/:id/attempts", attemptHandler.SubmitAttempt)
				quizzes.GET("/:id/attempts", attemptHandler.ListAttempts)
			}

			// Module routes
			modules := protected.Group("/modules")
			{
				modules.GET("", moduleHandler.ListModules)
				modules.POST("", moduleHandler.CreateModule)
				modules.GET("/:id", moduleHandler.GetModuleByID)
				modules.PUT("/:id", moduleHandler.UpdateModule)
				modules.DELETE("/:id", moduleHandler.DeleteModule)
			}

			// Material routes
			materials := protected.Group("/materials")
			{
				materials.GET("", materialHandler.ListMaterials)
				materials.POST("", materialHandler.CreateMaterial)
				materials.GET("/:id", materialHandler.GetMaterialByID)
				materials.PUT("/:id", materialHandler.UpdateMaterial)
				materials.DELETE("/:id", materialHandler.DeleteMaterial)
			}

			// Programming language dropdown
			protected.GET("/programming-languages", languageHandler.ListLanguages)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
