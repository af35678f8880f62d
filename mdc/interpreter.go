package mdc

import "github.com/iwtcode/haasAdapter/models"

// Ключевые слова режимов в ответе на Q104.
const (
	KeywordModeMDI     = "(MDI)"
	KeywordModeJog     = "(JOG)"
	KeywordModeZeroRet = "(ZERO RET)"
)

// Ключевые слова состояния программы в ответе на Q500.
const (
	KeywordProgram       = "PROGRAM"
	KeywordProgramMDI    = "MDI"
	KeywordStateIdle     = "IDLE"
	KeywordStateFeedHold = "FEED HOLD"
	KeywordStateAlarmOn  = "ALARM ON"
)

var modeKeywords = []string{KeywordModeMDI, KeywordModeJog, KeywordModeZeroRet}

var programStateKeywords = []string{KeywordStateIdle, KeywordStateFeedHold, KeywordStateAlarmOn}

// interpretMode преобразует ключевое слово режима. Неизвестный режим считается автоматическим.
func interpretMode(keyword string) models.Mode {
	switch keyword {
	case KeywordModeMDI:
		return models.ModeManualDataInput
	case KeywordModeJog:
		return models.ModeManual
	case KeywordModeZeroRet:
		return models.ModeAutomatic
	default:
		return models.ModeAutomatic
	}
}

// interpretProgramState преобразует состояние программы в режиме MDI.
// Неизвестное состояние считается ARMED.
func interpretProgramState(keyword string) models.ProgramState {
	switch keyword {
	case KeywordStateIdle:
		return models.ProgramStateReady
	case KeywordStateFeedHold:
		return models.ProgramStateInterrupted
	case KeywordStateAlarmOn:
		return models.ProgramStateStopped
	default:
		return models.ProgramStateArmed
	}
}
