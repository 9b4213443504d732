package telemetry

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/witka/biosensord/internal/errors"
	"codeberg.org/witka/biosensord/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

type sqliteRepository struct {
	db *sql.DB
}

// NewRepository opens (or creates) the archive database. The caller is
// single-threaded; no locking is needed around Store.
func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	logger.Debug().Str("path", cfg.DBPath).Msg("Initializing telemetry archive")

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal=WAL")
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	return &sqliteRepository{db: db}, nil
}

func (r *sqliteRepository) Store(rec *Record) error {
	_, err := r.db.Exec(insertRecordSQL,
		time.Now().UnixMilli(),
		rec.ECGValue,
		rec.GSRValue,
		rec.MuscleValue,
		boolToInt(rec.MuscleOK),
		rec.MuscleVoltage,
		rec.MuscleReason,
		rec.EnvTemperature,
		rec.EnvHumidity,
		rec.BodyTemperature,
		boolToInt(rec.BodyTempFresh),
		rec.HRValue,
		rec.SpO2Value,
		rec.IRValue,
		boolToInt(rec.LeadOffPlus),
		boolToInt(rec.LeadOffMinus),
		boolToInt(rec.LeadOff),
	)
	if err != nil {
		return errors.New().Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRepository) Close() error {
	if err := r.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}
	return nil
}
