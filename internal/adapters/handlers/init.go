package handlers

import (
	"net/http"

	"github.com/iwtcode/haasAdapter/internal/config"
	"github.com/iwtcode/haasAdapter/internal/interfaces"
	"github.com/iwtcode/haasAdapter/internal/middleware/logging"
	"github.com/iwtcode/haasAdapter/internal/middleware/swagger"

	"github.com/gin-gonic/gin"
)

// Handler - структура для обработчиков HTTP-запросов
type Handler struct {
	usecase interfaces.Usecases
	logger  *logging.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(usecase interfaces.Usecases, logger *logging.Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger.WithPrefix("HANDLER"),
	}
}

// ProvideRouter настраивает и возвращает HTTP-роутер
func ProvideRouter(h *Handler, cfg *config.AppConfig, swagCfg *swagger.Config) http.Handler {
	gin.SetMode(cfg.GinMode)

	router := gin.Default()

	// Swagger
	swagger.Setup(router, swagCfg)

	// Logger Middleware
	router.Use(LoggingMiddleware(h.logger))

	router.GET("/health", h.Health)

	// Группа API v1
	v1 := router.Group("/api/v1/haas")
	{
		machine := v1.Group("/machine")
		{
			machine.GET("/status", h.GetMachineStatus)
			machine.GET("/data", h.GetMachineData)
			machine.GET("/variables/:variable", h.GetVariable)
			machine.GET("/stream", h.StreamMachineData)
		}

		polling := v1.Group("/polling")
		{
			polling.POST("/start", h.StartPolling)
			polling.POST("/stop", h.StopPolling)
		}
	}

	return router
}
