package telemetry

import "codeberg.org/witka/biosensord/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrorCode("telemetry_invalid_config")
	ErrInvalidDBPath = errors.ErrorCode("telemetry_invalid_db_path")

	// Transport Errors
	ErrPortOpen       = errors.ErrorCode("telemetry_port_open_failed")
	ErrTransportWrite = errors.ErrorCode("telemetry_transport_write_failed")
	ErrTransportClose = errors.ErrorCode("telemetry_transport_close_failed")

	// Storage Errors
	ErrInvalidRecord  = errors.ErrorCode("telemetry_invalid_record")
	ErrStorageAccess  = errors.ErrorCode("telemetry_storage_access_failed")
	ErrStorageInit    = errors.ErrorCode("telemetry_storage_init_failed")
	ErrStorageClose   = errors.ErrorCode("telemetry_storage_close_failed")
	ErrSchemaInit     = errors.ErrorCode("telemetry_schema_init_failed")
	ErrRecordArchive  = errors.ErrorCode("telemetry_record_archive_failed")
	ErrOperationAbort = errors.ErrorCode("telemetry_operation_aborted")

	// Service Errors
	ErrServiceShutdown = errors.ErrorCode("telemetry_service_shutdown_failed")
)
