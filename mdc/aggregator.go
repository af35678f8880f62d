package mdc

import (
	"fmt"

	"github.com/iwtcode/haasAdapter/models"
	apperrors "github.com/iwtcode/haasAdapter/pkg/errors"
	"github.com/sirupsen/logrus"
)

// AggregateAllData собирает полный снимок состояния станка последовательно.
// Сначала запрашивается статус: если станок offline, остальные команды не отправляются.
// Любой сбой при сборке превращается в models.EmptySnapshot() и ошибку ErrAssembly.
func (a *MdcAdapter) AggregateAllData() (snapshot models.MachineSnapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.WithField("panic", r).Error("snapshot assembly panicked")
			snapshot = models.EmptySnapshot()
			err = fmt.Errorf("%w: panic: %v", apperrors.ErrAssembly, r)
		}
	}()

	// 1. Статус станка
	status, err := a.ReadStatus()
	if err != nil {
		return a.assemblyFailed("status", err)
	}
	if status == models.StatusOffline {
		a.logger.Debug("machine is offline, skipping remaining queries")
		return models.OfflineSnapshot(), nil
	}
	snapshot.Status = status

	// 2. Время включения
	if snapshot.PowerOnTime, err = a.ReadPowerOnTime(); err != nil {
		return a.assemblyFailed("power_on_time", err)
	}

	// 3. Режим работы
	if snapshot.Mode, err = a.ReadMode(); err != nil {
		return a.assemblyFailed("mode", err)
	}

	// 4. Состояние программы
	if snapshot.ProgramStatus, err = a.ReadProgramStatus(); err != nil {
		return a.assemblyFailed("program_status", err)
	}

	// 5. Счетчики деталей
	if snapshot.TotalPartCount, err = a.ReadPartCount(); err != nil {
		return a.assemblyFailed("total_part_count", err)
	}

	// 6. Время циклов и движения
	if snapshot.PreviousCycleTime, err = a.ReadPreviousCycleTime(); err != nil {
		return a.assemblyFailed("previous_cycle_time", err)
	}
	if snapshot.LastCycleTime, err = a.ReadLastCycleTime(); err != nil {
		return a.assemblyFailed("last_cycle_time", err)
	}
	if snapshot.MotionTime, err = a.ReadMotionTime(); err != nil {
		return a.assemblyFailed("motion_time", err)
	}

	// 7. Инструмент
	if snapshot.CurrentToolNumber, err = a.ReadCurrentTool(); err != nil {
		return a.assemblyFailed("current_tool_number", err)
	}
	if snapshot.TotalToolChanges, err = a.ReadToolChanges(); err != nil {
		return a.assemblyFailed("total_tool_changes", err)
	}

	// 8. Шпиндель и оси
	if snapshot.SpindleSpeed, err = a.ReadSpindleSpeed(); err != nil {
		return a.assemblyFailed("spindle_speed", err)
	}
	if snapshot.AxisPositions, err = a.ReadAxisPositions(); err != nil {
		return a.assemblyFailed("axis_positions", err)
	}

	return snapshot, nil
}

func (a *MdcAdapter) assemblyFailed(field string, cause error) (models.MachineSnapshot, error) {
	a.logger.WithFields(logrus.Fields{
		"field": field,
		"error": cause,
	}).Warn("snapshot assembly aborted")
	return models.EmptySnapshot(), fmt.Errorf("%w: failed to read %s: %w", apperrors.ErrAssembly, field, cause)
}
