package handlers

import (
	"net/http"
	"strconv"

	"github.com/iwtcode/haasAdapter/models"

	"github.com/gin-gonic/gin"
)

// GetMachineStatus возвращает доступность станка.
// @Summary Статус станка
// @Description Отправляет Q100 и сообщает, отвечает ли станок.
// @Tags Machine
// @Produce json
// @Success 200 {object} models.StatusResponse "Станок опрошен"
// @Failure 503 {object} models.ErrorResponse "Ошибка последовательного порта"
// @Router /machine/status [get]
func (h *Handler) GetMachineStatus(c *gin.Context) {
	status, err := h.usecase.GetMachineStatus()
	if err != nil {
		appErr := toAppError(err)
		h.logger.Error("Failed to read machine status", "error", err)
		c.AbortWithStatusJSON(appErr.Code, gin.H{
			"status":         "error",
			"machine_status": models.StatusOffline,
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "machine_status": status})
}

// GetMachineData возвращает полный снимок состояния станка.
// @Summary Снимок состояния
// @Description Опрашивает все поля станка. Недоступные поля получают значения-заглушки ("NA", -1, -1.0, 0.0).
// @Tags Machine
// @Produce json
// @Success 200 {object} models.DataResponse "Снимок состояния"
// @Failure 503 {object} models.ErrorResponse "Сбор снимка прерван"
// @Router /machine/data [get]
func (h *Handler) GetMachineData(c *gin.Context) {
	snapshot, err := h.usecase.GetMachineData()
	if err != nil {
		appErr := toAppError(err)
		h.logger.Error("Failed to collect snapshot", "error", err)
		c.AbortWithStatusJSON(appErr.Code, gin.H{
			"status": "error",
			"data":   snapshot,
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": snapshot})
}

// GetVariable возвращает значение макропеременной.
// @Summary Макропеременная
// @Description Отправляет "Q600 <variable>" и возвращает значение как строку.
// @Tags Machine
// @Produce json
// @Param variable path int true "Номер макропеременной, например 5041"
// @Success 200 {object} models.VariableResponse "Значение переменной"
// @Failure 400 {object} models.ErrorResponse "Неверный номер переменной"
// @Failure 503 {object} models.ErrorResponse "Ошибка последовательного порта"
// @Router /machine/variables/{variable} [get]
func (h *Handler) GetVariable(c *gin.Context) {
	variable, err := strconv.Atoi(c.Param("variable"))
	if err != nil || variable <= 0 {
		h.BadRequest(c, err, "Variable must be a positive integer")
		return
	}

	reading, err := h.usecase.GetVariable(variable)
	if err != nil {
		h.AppErrorResponse(c, toAppError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "variable": reading})
}

// Health сообщает о работоспособности сервиса.
// @Summary Проверка работоспособности
// @Tags Service
// @Produce json
// @Success 200 {object} models.HealthResponse "Сервис работает"
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.usecase.Health())
}
