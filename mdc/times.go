package mdc

import (
	"github.com/iwtcode/haasAdapter/models"
)

// ReadPowerOnTime отправляет Q300.
func (a *MdcAdapter) ReadPowerOnTime() (models.Value[string], error) {
	return a.readDuration(cmdPowerOnTime)
}

// ReadMotionTime отправляет Q301.
func (a *MdcAdapter) ReadMotionTime() (models.Value[string], error) {
	return a.readDuration(cmdMotionTime)
}

// ReadLastCycleTime отправляет Q303.
func (a *MdcAdapter) ReadLastCycleTime() (models.Value[string], error) {
	return a.readDuration(cmdLastCycleTime)
}

// ReadPreviousCycleTime отправляет Q304.
func (a *MdcAdapter) ReadPreviousCycleTime() (models.Value[string], error) {
	return a.readDuration(cmdPrevCycleTime)
}

// readDuration возвращает второй токен ответа как есть, без разбора формата.
// Метку стойки ("P.O. TIME") не ищет: при ответе с меткой вторым токеном будет ее часть.
func (a *MdcAdapter) readDuration(command string) (models.Value[string], error) {
	tokens, err := a.cmd.Execute(command)
	if err != nil {
		return models.None[string](models.ReasonNoResponse), err
	}
	if len(tokens) <= 1 {
		return unavailable[string](a, command, tokens), nil
	}
	return models.Some(tokens[1]), nil
}
