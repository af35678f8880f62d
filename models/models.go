package models

import (
	"encoding/json"
	"time"
)

// MachineStatus - доступность станка по линии связи.
type MachineStatus string

const (
	StatusOnline  MachineStatus = "Online"
	StatusOffline MachineStatus = "Offline"
)

// Mode - режим работы станка (ответ на Q104).
type Mode string

const (
	ModeManualDataInput Mode = "MANUAL_DATA_INPUT"
	ModeManual          Mode = "MANUAL"
	ModeAutomatic       Mode = "AUTOMATIC"
)

// ProgramState - состояние программы (ответ на Q500 в режиме MDI).
type ProgramState string

const (
	ProgramStateReady       ProgramState = "READY"
	ProgramStateInterrupted ProgramState = "INTERRUPTED"
	ProgramStateStopped     ProgramState = "STOPPED"
	ProgramStateArmed       ProgramState = "ARMED"
	// ProgramStateNamed означает, что станок вместо состояния сообщил имя активной программы.
	ProgramStateNamed ProgramState = "NAMED"
)

// ProgramStatus содержит либо состояние программы, либо имя выполняемой программы.
type ProgramStatus struct {
	State ProgramState
	Name  string
}

// NamedProgram возвращает статус с именем программы, как его прислал станок.
func NamedProgram(name string) ProgramStatus {
	return ProgramStatus{State: ProgramStateNamed, Name: name}
}

func (p ProgramStatus) String() string {
	if p.State == ProgramStateNamed {
		return p.Name
	}
	return string(p.State)
}

func (p ProgramStatus) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Значения, которые попадают в JSON вместо недоступных полей.
const (
	NoData          = "NA"
	NoToolNumber    = -1
	NoSpindleSpeed  = -1.0
	NoAxisPosition  = 0.0
	NoPartCount     = 0
	NoVariableValue = ""
)

// Reason объясняет, почему значение недоступно.
type Reason string

const (
	// ReasonNoResponse - ответ пустой: таймаут или станок ничего не прислал.
	ReasonNoResponse Reason = "no_response"
	// ReasonMalformed - ответ пришел, но его форма не совпала с ожидаемой.
	ReasonMalformed Reason = "malformed"
	// ReasonSkipped - команда не отправлялась, потому что станок offline.
	ReasonSkipped Reason = "skipped"
)

// Value - значение поля, которое может быть недоступно.
type Value[T comparable] struct {
	Val    T
	Valid  bool
	Reason Reason
}

func Some[T comparable](v T) Value[T] {
	return Value[T]{Val: v, Valid: true}
}

func None[T comparable](reason Reason) Value[T] {
	return Value[T]{Reason: reason}
}

// Get возвращает значение и признак его наличия.
func (v Value[T]) Get() (T, bool) {
	return v.Val, v.Valid
}

// Or возвращает значение либо fallback, если значения нет.
func (v Value[T]) Or(fallback T) T {
	if v.Valid {
		return v.Val
	}
	return fallback
}

// AxisPositions содержит фактические позиции осей X, Y, Z.
type AxisPositions struct {
	X Value[float64]
	Y Value[float64]
	Z Value[float64]
}

// Map возвращает позиции в виде новой карты "ось -> позиция".
func (a AxisPositions) Map() map[string]float64 {
	return map[string]float64{
		"X": a.X.Or(NoAxisPosition),
		"Y": a.Y.Or(NoAxisPosition),
		"Z": a.Z.Or(NoAxisPosition),
	}
}

// MachineSnapshot содержит полное состояние станка на момент опроса.
// Снимок передается по значению и не содержит ссылочных полей.
type MachineSnapshot struct {
	Status            MachineStatus
	PowerOnTime       Value[string]
	MotionTime        Value[string]
	LastCycleTime     Value[string]
	PreviousCycleTime Value[string]
	Mode              Value[Mode]
	ProgramStatus     Value[ProgramStatus]
	TotalPartCount    int
	CurrentToolNumber Value[int]
	TotalToolChanges  Value[int]
	SpindleSpeed      Value[float64]
	AxisPositions     AxisPositions
}

// snapshotDocument - форма снимка в JSON. Все поля присутствуют всегда.
type snapshotDocument struct {
	Status            MachineStatus      `json:"status"`
	PowerOnTime       string             `json:"power_on_time"`
	MotionTime        string             `json:"motion_time"`
	LastCycleTime     string             `json:"last_cycle_time"`
	PreviousCycleTime string             `json:"previous_cycle_time"`
	Mode              string             `json:"mode"`
	ProgramStatus     string             `json:"program_status"`
	TotalPartCount    int                `json:"total_part_count"`
	CurrentToolNumber int                `json:"current_tool_number"`
	TotalToolChanges  int                `json:"total_tool_changes"`
	SpindleSpeed      float64            `json:"spindle_speed"`
	AxisPositions     map[string]float64 `json:"axis_positions"`
}

func (s MachineSnapshot) document() snapshotDocument {
	mode := NoData
	if m, ok := s.Mode.Get(); ok {
		mode = string(m)
	}
	program := NoData
	if p, ok := s.ProgramStatus.Get(); ok {
		program = p.String()
	}

	return snapshotDocument{
		Status:            s.Status,
		PowerOnTime:       s.PowerOnTime.Or(NoData),
		MotionTime:        s.MotionTime.Or(NoData),
		LastCycleTime:     s.LastCycleTime.Or(NoData),
		PreviousCycleTime: s.PreviousCycleTime.Or(NoData),
		Mode:              mode,
		ProgramStatus:     program,
		TotalPartCount:    s.TotalPartCount,
		CurrentToolNumber: s.CurrentToolNumber.Or(NoToolNumber),
		TotalToolChanges:  s.TotalToolChanges.Or(NoToolNumber),
		SpindleSpeed:      s.SpindleSpeed.Or(NoSpindleSpeed),
		AxisPositions:     s.AxisPositions.Map(),
	}
}

// MarshalJSON выводит все поля снимка; недоступные поля получают значения-заглушки.
func (s MachineSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.document())
}

// OfflineSnapshot возвращает снимок для станка, который не ответил на Q100.
func OfflineSnapshot() MachineSnapshot {
	return unavailableSnapshot(ReasonSkipped)
}

// EmptySnapshot возвращает снимок, которым заменяется результат прерванного сбора.
func EmptySnapshot() MachineSnapshot {
	return unavailableSnapshot(ReasonNoResponse)
}

func unavailableSnapshot(reason Reason) MachineSnapshot {
	return MachineSnapshot{
		Status:            StatusOffline,
		PowerOnTime:       None[string](reason),
		MotionTime:        None[string](reason),
		LastCycleTime:     None[string](reason),
		PreviousCycleTime: None[string](reason),
		Mode:              None[Mode](reason),
		ProgramStatus:     None[ProgramStatus](reason),
		TotalPartCount:    NoPartCount,
		CurrentToolNumber: None[int](reason),
		TotalToolChanges:  None[int](reason),
		SpindleSpeed:      None[float64](reason),
		AxisPositions: AxisPositions{
			X: None[float64](reason),
			Y: None[float64](reason),
			Z: None[float64](reason),
		},
	}
}

// SnapshotEnvelope содержит снимок и метаданные опроса для отправки во внешние системы.
type SnapshotEnvelope struct {
	ID        string          `json:"id"`
	MachineID string          `json:"machine_id"`
	Timestamp time.Time       `json:"timestamp"`
	Snapshot  MachineSnapshot `json:"snapshot"`
}

// VariableReading - результат чтения макропеременной (Q600).
type VariableReading struct {
	Variable  int    `json:"variable"`
	Value     string `json:"value"`
	Available bool   `json:"available"`
}
