package mdc

import (
	"fmt"
	"strconv"

	"github.com/iwtcode/haasAdapter/models"
	"github.com/sirupsen/logrus"
)

// Номера макропеременных стойки Haas.
const (
	VarAxisX        = 5041
	VarAxisY        = 5042
	VarAxisZ        = 5043
	VarSpindleSpeed = 3027
)

// ReadVariable отправляет "Q600 <v>" и возвращает значение макропеременной как строку.
// Ответ принимается, только если станок повторил номер запрошенной переменной.
func (a *MdcAdapter) ReadVariable(v int) (models.Value[string], error) {
	command := fmt.Sprintf("%s %d", cmdMacroVariable, v)
	tokens, err := a.cmd.Execute(command)
	if err != nil {
		return models.None[string](models.ReasonNoResponse), err
	}
	if len(tokens) <= 2 || tokens[1] != strconv.Itoa(v) {
		return unavailable[string](a, command, tokens), nil
	}
	return models.Some(tokens[2]), nil
}

// ReadAxisPositions считывает фактические позиции X, Y, Z.
func (a *MdcAdapter) ReadAxisPositions() (models.AxisPositions, error) {
	var positions models.AxisPositions
	axes := []struct {
		variable int
		dst      *models.Value[float64]
	}{
		{VarAxisX, &positions.X},
		{VarAxisY, &positions.Y},
		{VarAxisZ, &positions.Z},
	}

	for _, axis := range axes {
		value, err := a.readFloatVariable(axis.variable)
		if err != nil {
			return models.AxisPositions{}, fmt.Errorf("failed to read axis variable %d: %w", axis.variable, err)
		}
		*axis.dst = value
	}
	return positions, nil
}

// ReadSpindleSpeed считывает скорость шпинделя, об/мин.
func (a *MdcAdapter) ReadSpindleSpeed() (models.Value[float64], error) {
	return a.readFloatVariable(VarSpindleSpeed)
}

func (a *MdcAdapter) readFloatVariable(v int) (models.Value[float64], error) {
	raw, err := a.ReadVariable(v)
	if err != nil {
		return models.None[float64](models.ReasonNoResponse), err
	}
	s, ok := raw.Get()
	if !ok {
		return models.None[float64](raw.Reason), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		a.logger.WithFields(logrus.Fields{
			"variable": v,
			"value":    s,
		}).Debug("variable is not a number")
		return models.None[float64](models.ReasonMalformed), nil
	}
	return models.Some(f), nil
}
