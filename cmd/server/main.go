package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/taskapp/taskapp-api/internal/config"
	"github.com/taskapp/taskapp-api/internal/constants"
	"github.com/taskapp/taskapp-api/internal/database"
	"github.com/taskapp/taskapp-api/internal/handlers"
	"github.com/taskapp/taskapp-api/internal/middleware"
	"github.com/taskapp/taskapp-api/internal/repository"
	"github.com/taskapp/taskapp-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Performance indexes (the existence check is PostgreSQL-specific)
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	personalTaskRepo := repository.NewPersonalTaskRepository(db)
	groupTaskRepo := repository.NewGroupTaskRepository(db)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	groupService := services.NewGroupService(groupRepo, userRepo)
	personalTaskService := services.NewPersonalTaskService(personalTaskRepo)
	groupTaskService := services.NewGroupTaskService(groupTaskRepo, groupRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	groupHandler := handlers.NewGroupHandler(groupService)
	personalTaskHandler := handlers.NewPersonalTaskHandler(personalTaskService, aiService)
	groupTaskHandler := handlers.NewGroupTaskHandler(groupTaskService, groupService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TaskApp API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
		}

		// User routes (protected; administration is master-only)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("/me", authHandler.GetCurrentUser)
			users.PUT("/profile", authHandler.UpdateProfile)
			users.GET("", middleware.RequireMasterRole(), userHandler.ListUsers)
			users.PUT("/:id", middleware.RequireMasterRole(), userHandler.UpdateUser)
			users.POST("/master", middleware.RequireMasterRole(), userHandler.CreateMaster)
		}

		// Personal task routes (protected, owner-scoped)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", personalTaskHandler.ListTasks)
			tasks.POST("", personalTaskHandler.CreateTask)
			tasks.PUT("/:id", personalTaskHandler.UpdateTask)
			tasks.POST("/generate", personalTaskHandler.GenerateTasks)
		}

		// Group routes (protected)
		groups := api.Group("/groups")
		groups.Use(middleware.RequireAuth())
		{
			groups.POST("", groupHandler.CreateGroup)
			groups.GET("", groupHandler.ListGroups)
			groups.POST("/:id/collaborators", groupHandler.AddCollaborator)
			groups.GET("/:id/collaborators", groupHandler.ListCollaborators)
			groups.POST("/:id/tasks", groupTaskHandler.CreateTask)
			groups.GET("/:id/tasks", groupTaskHandler.ListTasks)
			groups.PUT("/:id/tasks/:task_id", groupTaskHandler.UpdateTask)
			groups.PUT("/:id/tasks/:task_id/complete", groupTaskHandler.CompleteTask)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
