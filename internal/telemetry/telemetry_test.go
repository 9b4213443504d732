package telemetry_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"codeberg.org/witka/biosensord/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() *telemetry.Record {
	return &telemetry.Record{
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
}

func TestNewServiceDisabledIsNoop(t *testing.T) {
	svc, err := telemetry.NewService(telemetry.Config{Enabled: false})
	require.NoError(t, err)

	assert.NoError(t, svc.Record(context.Background(), testRecord()))
	assert.NoError(t, svc.Record(context.Background(), nil))
	assert.NoError(t, svc.Close())
}

func TestNewServiceRequiresPathWhenEnabled(t *testing.T) {
	_, err := telemetry.NewService(telemetry.Config{Enabled: true})
	assert.Error(t, err)
}

func TestServiceArchivesRecords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")
	svc, err := telemetry.NewService(telemetry.Config{DBPath: dbPath, Enabled: true})
	require.NoError(t, err)

	require.NoError(t, svc.Record(context.Background(), testRecord()))
	require.NoError(t, svc.Record(context.Background(), testRecord()))
	require.NoError(t, svc.Close())

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM telemetry").Scan(&count))
	assert.Equal(t, 2, count)

	var hr int
	var reason string
	require.NoError(t, db.QueryRow("SELECT hr_value, muscle_reason FROM telemetry LIMIT 1").Scan(&hr, &reason))
	assert.Equal(t, 72, hr)
	assert.Equal(t, "ok", reason)
}

func TestServiceRejectsNilRecord(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")
	svc, err := telemetry.NewService(telemetry.Config{DBPath: dbPath, Enabled: true})
	require.NoError(t, err)
	defer svc.Close()

	assert.Error(t, svc.Record(context.Background(), nil))
}

func TestServiceAbortsOnCancelledContext(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")
	svc, err := telemetry.NewService(telemetry.Config{DBPath: dbPath, Enabled: true})
	require.NoError(t, err)
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, svc.Record(ctx, testRecord()))
}
