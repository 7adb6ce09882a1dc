package main

import (
	"log"

	"codezest/config"
	"codezest/handlers"
	"codezest/middleware"
	"codezest/models"
	"codezest/routes"
	"codezest/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.ProgrammingLanguage{},
		&models.Module{},
		&models.Material{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.QuizAttempt{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	quizService := services.NewQuizService(db, redisClient)
	moduleService := services.NewModuleService(db)
	materialService := services.NewMaterialService(db)
	attemptService := services.NewAttemptService(db, quizService)
	languageService := services.NewLanguageService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	moduleHandler := handlers.NewModuleHandler(moduleService)
	materialHandler := handlers.NewMaterialHandler(materialService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)
	languageHandler := handlers.NewLanguageHandler(languageService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS and request-id middleware
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// Setup routes
	routes.SetupRoutes(router, authHandler, quizHandler, moduleHandler, materialHandler, attemptHandler, languageHandler, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
