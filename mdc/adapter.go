package mdc

import (
	"github.com/iwtcode/haasAdapter/models"
	"github.com/sirupsen/logrus"
)

// Q-команды протокола сбора данных Haas.
const (
	cmdStatus        = "Q100"
	cmdMode          = "Q104"
	cmdToolChanges   = "Q200"
	cmdCurrentTool   = "Q201"
	cmdPowerOnTime   = "Q300"
	cmdMotionTime    = "Q301"
	cmdLastCycleTime = "Q303"
	cmdPrevCycleTime = "Q304"
	cmdPartCounter1  = "Q402"
	cmdPartCounter2  = "Q403"
	cmdProgramStatus = "Q500"
	cmdMacroVariable = "Q600"
)

// MdcAdapter читает отдельные поля состояния станка поверх Commander
// и собирает из них снимок.
type MdcAdapter struct {
	cmd    Commander
	logger logrus.FieldLogger
}

// NewMdcAdapter создает адаптер. Если logger равен nil, диагностика отбрасывается.
func NewMdcAdapter(cmd Commander, logger logrus.FieldLogger) *MdcAdapter {
	return &MdcAdapter{
		cmd:    cmd,
		logger: loggerOrDiscard(logger),
	}
}

// unavailable логирует причину, по которой ответ не удалось использовать.
func unavailable[T comparable](a *MdcAdapter, command string, tokens []string) models.Value[T] {
	reason := reasonFor(tokens)
	a.logger.WithFields(logrus.Fields{
		"command": command,
		"reason":  reason,
		"tokens":  tokens,
	}).Debug("response not usable")
	return models.None[T](reason)
}
