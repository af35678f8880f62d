package mdc

import (
	"github.com/iwtcode/haasAdapter/models"
)

// ReadStatus отправляет Q100. Любой осмысленный ответ означает, что станок на связи.
func (a *MdcAdapter) ReadStatus() (models.MachineStatus, error) {
	tokens, err := a.cmd.Execute(cmdStatus)
	if err != nil {
		return models.StatusOffline, err
	}
	if len(tokens) > 1 {
		return models.StatusOnline, nil
	}
	return models.StatusOffline, nil
}

// ReadMode отправляет Q104 и интерпретирует режим работы.
func (a *MdcAdapter) ReadMode() (models.Value[models.Mode], error) {
	tokens, err := a.cmd.Execute(cmdMode)
	if err != nil {
		return models.None[models.Mode](models.ReasonNoResponse), err
	}
	if len(tokens) <= 1 {
		return unavailable[models.Mode](a, cmdMode, tokens), nil
	}

	keyword, _ := matchKeyword(upperAll(tokens), 1, modeKeywords)
	return models.Some(interpretMode(keyword)), nil
}

// ReadProgramStatus отправляет Q500. Если станок не в MDI, он присылает имя
// программы, и оно возвращается как есть.
func (a *MdcAdapter) ReadProgramStatus() (models.Value[models.ProgramStatus], error) {
	tokens, err := a.cmd.Execute(cmdProgramStatus)
	if err != nil {
		return models.None[models.ProgramStatus](models.ReasonNoResponse), err
	}
	if len(tokens) <= 1 || tokens[0] != KeywordProgram {
		return unavailable[models.ProgramStatus](a, cmdProgramStatus, tokens), nil
	}

	if tokens[1] != KeywordProgramMDI {
		return models.Some(models.NamedProgram(tokens[1])), nil
	}

	keyword, _ := matchKeyword(tokens, 2, programStateKeywords)
	return models.Some(models.ProgramStatus{State: interpretProgramState(keyword)}), nil
}
