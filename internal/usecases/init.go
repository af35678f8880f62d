package usecases

import (
	"github.com/iwtcode/haasAdapter/internal/config"
	"github.com/iwtcode/haasAdapter/internal/interfaces"
)

// NewUsecases - конструктор для fx
func NewUsecases(
	reader interfaces.MachineReader,
	collector interfaces.SnapshotCollector,
	monitor interfaces.HostMonitor,
	cfg *config.AppConfig,
) interfaces.Usecases {
	return NewUsecase(reader, collector, monitor, cfg.Haas.SerialPort)
}
