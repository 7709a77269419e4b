package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"project-task-api/internal/client"
	"project-task-api/internal/config"
	"project-task-api/internal/handler"
	"project-task-api/internal/metrics"
	"project-task-api/internal/middleware"
	"project-task-api/internal/realtime"
	"project-task-api/internal/repository"
	"project-task-api/internal/service"
)

// Setup wires repositories, services and handlers into the gin engine
func Setup(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	userClient client.UserClient,
	hub *realtime.Hub,
	m *metrics.Metrics,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.Metrics(m))

	// Repositories
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	definitionRepo := repository.NewFieldDefinitionRepository(db)
	valueRepo := repository.NewFieldValueRepository(db)

	// Services
	projectService := service.NewProjectService(projectRepo, m)
	taskService := service.NewTaskService(taskRepo, projectRepo, m)
	definitionService := service.NewFieldDefinitionService(
		definitionRepo, userClient, hub, redisClient, m,
		cfg.Fields.MaxFreeFields,
		time.Duration(cfg.Fields.CacheTTLSeconds)*time.Second,
	)
	valueService := service.NewFieldValueService(definitionRepo, valueRepo, projectRepo, hub, m)
	columnService := service.NewColumnService(definitionRepo, valueRepo)
	activityService := service.NewActivityService(projectRepo, taskRepo)

	// Handlers
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	definitionHandler := handler.NewFieldDefinitionHandler(definitionService)
	valueHandler := handler.NewFieldValueHandler(valueService)
	columnHandler := handler.NewColumnHandler(columnService)
	activityHandler := handler.NewActivityHandler(activityService)
	healthHandler := handler.NewHealthHandler()

	// Health and metrics endpoints (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Realtime event stream
	r.GET("/ws", hub.HandleWebSocket)

	// API routes (require auth)
	api := r.Group("/api")
	api.Use(middleware.Auth(cfg.Auth.SecretKey))
	{
		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:projectId", projectHandler.GetProject)
			projects.PATCH("/:projectId", projectHandler.UpdateProject)
			projects.DELETE("/:projectId", projectHandler.DeleteProject)
			projects.GET("/:projectId/flow", activityHandler.GetProjectFlow)
		}

		tasks := api.Group("/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:taskId", taskHandler.GetTask)
			tasks.PATCH("/:taskId", taskHandler.UpdateTask)
			tasks.PUT("/:taskId/status", taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:taskId", taskHandler.DeleteTask)
		}

		definitions := api.Group("/field-definitions")
		{
			definitions.GET("", definitionHandler.ListFieldDefinitions)
			definitions.POST("", definitionHandler.CreateFieldDefinition)
			definitions.PUT("/reorder", definitionHandler.ReorderFieldDefinitions)
			definitions.PATCH("/:fieldId", definitionHandler.UpdateFieldDefinition)
			definitions.DELETE("/:fieldId", definitionHandler.DeleteFieldDefinition)
		}

		values := api.Group("/field-values")
		{
			values.GET("/:entityType/:entityId", valueHandler.GetFieldValues)
			values.PUT("/:entityType/:entityId", valueHandler.BulkSetFieldValues)
			values.PUT("/:entityType/:entityId/:fieldId", valueHandler.SetFieldValue)
		}

		columns := api.Group("/columns")
		{
			columns.GET("", columnHandler.GetColumns)
			columns.POST("/rows", columnHandler.GetColumnRows)
		}

		api.GET("/activity/tasks", activityHandler.GetTaskActivity)
	}

	return r
}
