package telemetry_test

import (
	"encoding/json"
	"testing"

	"codeberg.org/witka/biosensord/internal/telemetry"
	"github.com/stretchr/testify/assert"
)

func TestEncodeWireFormat(t *testing.T) {
	r := &telemetry.Record{
		ECGValue:        31234,
		GSRValue:        20456,
		MuscleValue:     15000,
		MuscleOK:        true,
		MuscleVoltage:   0.755,
		MuscleReason:    "ok",
		EnvTemperature:  24.5,
		EnvHumidity:     41.0,
		BodyTemperature: 36.8,
		BodyTempFresh:   true,
		HRValue:         72,
		SpO2Value:       98,
		IRValue:         10234,
	}

	want := `{"ecg_value": 31234, "gsr_value": 20456, ` +
		`"muscle_value": 15000, "muscle_ok": true, "muscle_voltage": 0.755, "muscle_reason": "ok", ` +
		`"env_temperature": 24.50, "env_humidity": 41.00, ` +
		`"body_temperature": 36.80, "body_temp_fresh": true, ` +
		`"hr_value": 72, "spo2_value": 98, "ir_value": 10234, ` +
		`"lead_off_plus": false, "lead_off_minus": false, "lead_off": false}` + "\n"

	got := r.Encode()
	assert.Equal(t, want, string(got))
	assert.True(t, json.Valid(got))
}

func TestEncodeZeroRecordIsValidJSON(t *testing.T) {
	got := (&telemetry.Record{}).Encode()

	assert.True(t, json.Valid(got))
	assert.Contains(t, string(got), `"body_temperature": 0.00`)
	assert.Contains(t, string(got), `"muscle_ok": false`)
}
