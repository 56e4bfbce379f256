package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ccomp-uerj/progress-backend/internal/clients/catalog"
	rediscli "github.com/ccomp-uerj/progress-backend/internal/clients/redis"
	"github.com/ccomp-uerj/progress-backend/internal/curriculum"
	"github.com/ccomp-uerj/progress-backend/internal/db"
	"github.com/ccomp-uerj/progress-backend/internal/handlers"
	"github.com/ccomp-uerj/progress-backend/internal/pkg/logger"
	"github.com/ccomp-uerj/progress-backend/internal/repos"
	"github.com/ccomp-uerj/progress-backend/internal/server"
	"github.com/ccomp-uerj/progress-backend/internal/services"
	"github.com/ccomp-uerj/progress-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Student store
	dbService, err := db.New(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Warn("Auto migration failed", "error", err)
	}
	gdb := dbService.DB()

	// Repos
	studentRepo := repos.NewStudentRepo(gdb, log)

	// Catalog
	layout := curriculum.LoadLayout(log)
	catalogClient := catalog.NewFromEnv(log)
	catalogCache, err := rediscli.NewCatalogCache(log)
	if err != nil {
		log.Warn("Catalog cache disabled", "error", err)
	}

	// Services
	log.Info("Setting up services...")
	catalogService := services.NewCatalogService(log, catalogClient, catalogCache, layout)
	studentService := services.NewStudentService(gdb, log, studentRepo, catalogService)
	progressService := services.NewProgressService(log, catalogService, studentService)

	// Handlers
	studentHandler := handlers.NewStudentHandler(log, studentService)
	disciplineHandler := handlers.NewDisciplineHandler(log, catalogService)
	progressHandler := handlers.NewProgressHandler(log, progressService)

	// Router
	var allowOrigins []string
	if raw := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log); raw != "" {
		allowOrigins = strings.Split(raw, ",")
	}
	router := server.NewRouter(server.RouterConfig{
		StudentHandler:    studentHandler,
		DisciplineHandler: disciplineHandler,
		ProgressHandler:   progressHandler,
		AllowOrigins:      allowOrigins,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
