package telemetry

import "fmt"

// Encode renders the record as one newline-terminated JSON object with a
// fixed field set, order and precision. Receivers parse positionally, so
// this stays hand-built rather than going through encoding/json (which
// cannot pin float precision).
func (r *Record) Encode() []byte {
	return []byte(fmt.Sprintf(
		`{"ecg_value": %d, "gsr_value": %d, `+
			`"muscle_value": %d, "muscle_ok": %t, "muscle_voltage": %.3f, "muscle_reason": "%s", `+
			`"env_temperature": %.2f, "env_humidity": %.2f, `+
			`"body_temperature": %.2f, "body_temp_fresh": %t, `+
			`"hr_value": %d, "spo2_value": %d, "ir_value": %d, `+
			`"lead_off_plus": %t, "lead_off_minus": %t, "lead_off": %t}`+"\n",
		r.ECGValue,
		r.GSRValue,
		r.MuscleValue,
		r.MuscleOK,
		r.MuscleVoltage,
		r.MuscleReason,
		r.EnvTemperature,
		r.EnvHumidity,
		r.BodyTemperature,
		r.BodyTempFresh,
		r.HRValue,
		r.SpO2Value,
		r.IRValue,
		r.LeadOffPlus,
		r.LeadOffMinus,
		r.LeadOff,
	))
}
