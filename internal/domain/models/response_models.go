package models

import (
	"time"

	"github.com/iwtcode/haasAdapter/models"
)

// ErrorResponse представляет стандартный ответ с ошибкой.
type ErrorResponse struct {
	Status string `json:"status" example:"error"`
	Error  struct {
		Code    int    `json:"code" example:"400"`
		Message string `json:"message" example:"bad request"`
	} `json:"error"`
}

// MessageResponse представляет стандартный успешный ответ с сообщением.
type MessageResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message" example:"Polling started"`
}

// StatusResponse - ответ на запрос доступности станка.
type StatusResponse struct {
	Status        string               `json:"status" example:"ok"`
	MachineStatus models.MachineStatus `json:"machine_status" example:"Online"`
}

// DataResponse - полный снимок состояния станка.
type DataResponse struct {
	Status string                 `json:"status" example:"ok"`
	Data   models.MachineSnapshot `json:"data"`
}

// VariableResponse - значение макропеременной.
type VariableResponse struct {
	Status   string                 `json:"status" example:"ok"`
	Variable models.VariableReading `json:"variable"`
}

// PollingRequest определяет структуру для запроса на запуск сбора данных.
type PollingRequest struct {
	Interval int `json:"interval" binding:"required,gt=0"` // в миллисекундах
}

// CollectorInfo описывает состояние фонового сбора данных.
type CollectorInfo struct {
	Running   bool          `json:"running"`
	Interval  time.Duration `json:"interval_ns" swaggertype:"integer"`
	Published int64         `json:"published"`
	Failed    int64         `json:"failed"`
	LastError string        `json:"last_error,omitempty"`
	LastRunAt *time.Time    `json:"last_run_at,omitempty"`
}

// HostStats - загрузка машины, на которой работает адаптер.
type HostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	UptimeSeconds uint64  `json:"uptime_seconds"`
}

// HealthResponse - ответ на проверку работоспособности сервиса.
type HealthResponse struct {
	Status    string        `json:"status" example:"ok"`
	MachineID string        `json:"machine_id" example:"/dev/ttyUSB0"`
	Collector CollectorInfo `json:"collector"`
	Host      *HostStats    `json:"host,omitempty"`
}
