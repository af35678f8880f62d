package usecases

import (
	"context"
	"fmt"
	"time"

	domain "github.com/iwtcode/haasAdapter/internal/domain/models"
	"github.com/iwtcode/haasAdapter/internal/interfaces"
	"github.com/iwtcode/haasAdapter/models"
	apperrors "github.com/iwtcode/haasAdapter/pkg/errors"
)

type Usecase struct {
	reader    interfaces.MachineReader
	collector interfaces.SnapshotCollector
	monitor   interfaces.HostMonitor
	machineID string
}

func NewUsecase(reader interfaces.MachineReader, collector interfaces.SnapshotCollector, monitor interfaces.HostMonitor, machineID string) interfaces.Usecases {
	return &Usecase{
		reader:    reader,
		collector: collector,
		monitor:   monitor,
		machineID: machineID,
	}
}

func (u *Usecase) GetMachineStatus() (models.MachineStatus, error) {
	return u.reader.GetStatus()
}

func (u *Usecase) GetMachineData() (models.MachineSnapshot, error) {
	return u.reader.GetSnapshot()
}

func (u *Usecase) GetVariable(variable int) (models.VariableReading, error) {
	if variable <= 0 {
		return models.VariableReading{}, fmt.Errorf("%w: %d", apperrors.ErrInvalidVariable, variable)
	}

	value, err := u.reader.GetVariable(variable)
	if err != nil {
		return models.VariableReading{}, err
	}

	return models.VariableReading{
		Variable:  variable,
		Value:     value.Or(models.NoVariableValue),
		Available: value.Valid,
	}, nil
}

// StartPolling запускает фоновый сбор. Сбор живет до StopPolling, а не до конца HTTP-запроса.
func (u *Usecase) StartPolling(interval time.Duration) error {
	return u.collector.Start(context.Background(), interval)
}

func (u *Usecase) StopPolling() error {
	return u.collector.Stop()
}

func (u *Usecase) Health() domain.HealthResponse {
	health := domain.HealthResponse{
		Status:    "ok",
		MachineID: u.machineID,
		Collector: u.collector.Info(),
	}
	if u.monitor != nil {
		if stats, err := u.monitor.HostStats(); err == nil {
			health.Host = stats
		}
	}
	return health
}
