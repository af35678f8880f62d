package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	v := Some(5)
	got, ok := v.Get()
	assert.True(t, ok)
	assert.Equal(t, 5, got)
	assert.Equal(t, 5, v.Or(-1))

	none := None[int](ReasonMalformed)
	_, ok = none.Get()
	assert.False(t, ok)
	assert.Equal(t, -1, none.Or(-1))
	assert.Equal(t, ReasonMalformed, none.Reason)
}

func TestAxisPositionsMapIsFreshCopy(t *testing.T) {
	axes := AxisPositions{X: Some(1.5), Y: None[float64](ReasonNoResponse), Z: Some(-2.0)}

	m := axes.Map()
	assert.Equal(t, map[string]float64{"X": 1.5, "Y": 0.0, "Z": -2.0}, m)

	m["X"] = 99
	assert.Equal(t, 1.5, axes.Map()["X"])
}

func TestProgramStatusString(t *testing.T) {
	assert.Equal(t, "READY", ProgramStatus{State: ProgramStateReady}.String())
	assert.Equal(t, "O01234", NamedProgram("O01234").String())
}

func TestSnapshotJSONUsesSentinels(t *testing.T) {
	data, err := json.Marshal(OfflineSnapshot())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"status": "Offline",
		"power_on_time": "NA",
		"motion_time": "NA",
		"last_cycle_time": "NA",
		"previous_cycle_time": "NA",
		"mode": "NA",
		"program_status": "NA",
		"total_part_count": 0,
		"current_tool_number": -1,
		"total_tool_changes": -1,
		"spindle_speed": -1,
		"axis_positions": {"X": 0, "Y": 0, "Z": 0}
	}`, string(data))
}

func TestSnapshotJSONOnline(t *testing.T) {
	snapshot := MachineSnapshot{
		Status:            StatusOnline,
		PowerOnTime:       Some("00012:34:56"),
		MotionTime:        Some("00001:02:03"),
		LastCycleTime:     Some("000:00:45"),
		PreviousCycleTime: None[string](ReasonMalformed),
		Mode:              Some(ModeManual),
		ProgramStatus:     Some(NamedProgram("MYJOB")),
		TotalPartCount:    8,
		CurrentToolNumber: Some(7),
		TotalToolChanges:  Some(42),
		SpindleSpeed:      Some(1200.5),
		AxisPositions:     AxisPositions{X: Some(12.5), Y: Some(0.25), Z: None[float64](ReasonNoResponse)},
	}

	data, err := json.Marshal(snapshot)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"status": "Online",
		"power_on_time": "00012:34:56",
		"motion_time": "00001:02:03",
		"last_cycle_time": "000:00:45",
		"previous_cycle_time": "NA",
		"mode": "MANUAL",
		"program_status": "MYJOB",
		"total_part_count": 8,
		"current_tool_number": 7,
		"total_tool_changes": 42,
		"spindle_speed": 1200.5,
		"axis_positions": {"X": 12.5, "Y": 0.25, "Z": 0}
	}`, string(data))
}

func TestEnvelopeEmbedsSnapshotDocument(t *testing.T) {
	data, err := json.Marshal(SnapshotEnvelope{ID: "id-1", MachineID: "/dev/ttyUSB0", Snapshot: EmptySnapshot()})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "/dev/ttyUSB0", decoded["machine_id"])
	snapshot, ok := decoded["snapshot"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Offline", snapshot["status"])
	assert.Equal(t, "NA", snapshot["mode"])
}
