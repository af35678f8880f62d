package host

import (
	domain "github.com/iwtcode/haasAdapter/internal/domain/models"
	"github.com/iwtcode/haasAdapter/internal/interfaces"

	"github.com/shirou/gopsutil/v3/cpu"
	gohost "github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Monitor читает загрузку машины, на которой работает адаптер.
type Monitor struct{}

var _ interfaces.HostMonitor = (*Monitor)(nil)

func NewMonitor() *Monitor {
	return &Monitor{}
}

// HostStats возвращает загрузку CPU и памяти и время работы машины.
func (m *Monitor) HostStats() (*domain.HostStats, error) {
	percentage, err := cpu.Percent(0, false)
	if err != nil {
		return nil, err
	}

	virtualMemory, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}

	uptime, err := gohost.Uptime()
	if err != nil {
		return nil, err
	}

	stats := &domain.HostStats{
		MemoryPercent: virtualMemory.UsedPercent,
		UptimeSeconds: uptime,
	}
	if len(percentage) > 0 {
		stats.CPUPercent = percentage[0]
	}
	return stats, nil
}
