package mdc

import (
	"github.com/iwtcode/haasAdapter/models"
)

const (
	labelToolChanges = "TOOL CHANGES"
	labelUsingTool   = "USING TOOL"
)

// ReadToolChanges отправляет Q200 и возвращает общее число смен инструмента.
func (a *MdcAdapter) ReadToolChanges() (models.Value[int], error) {
	return a.readLabeledCount(cmdToolChanges, labelToolChanges)
}

// ReadCurrentTool отправляет Q201 и возвращает номер инструмента в шпинделе.
func (a *MdcAdapter) ReadCurrentTool() (models.Value[int], error) {
	return a.readLabeledCount(cmdCurrentTool, labelUsingTool)
}

func (a *MdcAdapter) readLabeledCount(command, label string) (models.Value[int], error) {
	tokens, err := a.cmd.Execute(command)
	if err != nil {
		return models.None[int](models.ReasonNoResponse), err
	}

	raw, ok := labeledValue(tokens, label)
	if !ok {
		return unavailable[int](a, command, tokens), nil
	}
	n, ok := parseCount(raw)
	if !ok {
		return unavailable[int](a, command, tokens), nil
	}
	return models.Some(n), nil
}
