package interfaces

import (
	"time"

	domain "github.com/iwtcode/haasAdapter/internal/domain/models"
	"github.com/iwtcode/haasAdapter/models"
)

// Usecases - это агрегирующий интерфейс для всех use cases
type Usecases interface {
	GetMachineStatus() (models.MachineStatus, error)
	GetMachineData() (models.MachineSnapshot, error)
	GetVariable(variable int) (models.VariableReading, error)
	StartPolling(interval time.Duration) error
	StopPolling() error
	Health() domain.HealthResponse
}
