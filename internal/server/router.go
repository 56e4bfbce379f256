package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ccomp-uerj/progress-backend/internal/handlers"
)

type RouterConfig struct {
	StudentHandler    *handlers.StudentHandler
	DisciplineHandler *handlers.DisciplineHandler
	ProgressHandler   *handlers.ProgressHandler
	AllowOrigins      []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Catalog
		api.GET("/disciplines", cfg.DisciplineHandler.ListDisciplines)
		api.POST("/disciplines/actions/refresh", cfg.DisciplineHandler.RefreshDisciplines)
		api.GET("/disciplines/:id", cfg.DisciplineHandler.GetDiscipline)
		api.GET("/disciplines/:id/classes/:classNumber", cfg.DisciplineHandler.GetClass)

		// Students
		api.GET("/students/:studentId", cfg.StudentHandler.GetStudent)
		api.PATCH("/students/:studentId", cfg.StudentHandler.PatchProfile)
		api.PUT("/students/:studentId/completed-disciplines/:disciplineId", cfg.StudentHandler.PutCompletedDiscipline)
		api.DELETE("/students/:studentId/completed-disciplines/:disciplineId", cfg.StudentHandler.DeleteCompletedDiscipline)
		api.PUT("/students/:studentId/current-disciplines/:disciplineId/:classNumber", cfg.StudentHandler.PutCurrentDiscipline)
		api.DELETE("/students/:studentId/current-disciplines/:disciplineId/:classNumber", cfg.StudentHandler.DeleteCurrentDiscipline)
		api.DELETE("/students/:studentId/disciplines/:disciplineId", cfg.StudentHandler.DeleteDisciplineStatus)

		// Progress
		api.GET("/students/:studentId/progress", cfg.ProgressHandler.GetProgress)
	}

	return router
}
