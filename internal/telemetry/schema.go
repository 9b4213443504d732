package telemetry

import (
	"database/sql"

	"codeberg.org/witka/biosensord/internal/errors"
)

const createTableSQL = `
    CREATE TABLE IF NOT EXISTS telemetry (
        recorded_at      INTEGER NOT NULL,
        ecg_value        INTEGER NOT NULL,
        gsr_value        INTEGER NOT NULL,
        muscle_value     INTEGER NOT NULL,
        muscle_ok        INTEGER NOT NULL CHECK (muscle_ok IN (0, 1)),
        muscle_voltage   REAL NOT NULL,
        muscle_reason    TEXT NOT NULL,
        env_temperature  REAL NOT NULL,
        env_humidity     REAL NOT NULL,
        body_temperature REAL NOT NULL,
        body_temp_fresh  INTEGER NOT NULL CHECK (body_temp_fresh IN (0, 1)),
        hr_value         INTEGER NOT NULL,
        spo2_value       INTEGER NOT NULL,
        ir_value         INTEGER NOT NULL,
        lead_off_plus    INTEGER NOT NULL CHECK (lead_off_plus IN (0, 1)),
        lead_off_minus   INTEGER NOT NULL CHECK (lead_off_minus IN (0, 1)),
        lead_off         INTEGER NOT NULL CHECK (lead_off IN (0, 1))
    );
    CREATE INDEX IF NOT EXISTS idx_telemetry_recorded_at ON telemetry (recorded_at);`

const insertRecordSQL = `
    INSERT INTO telemetry (
        recorded_at,
        ecg_value, gsr_value,
        muscle_value, muscle_ok, muscle_voltage, muscle_reason,
        env_temperature, env_humidity,
        body_temperature, body_temp_fresh,
        hr_value, spo2_value, ir_value,
        lead_off_plus, lead_off_minus, lead_off
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(createTableSQL); err != nil {
		return errors.New().Wrap(ErrSchemaInit, err)
	}
	return nil
}
