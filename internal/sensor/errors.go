package sensor

import "codeberg.org/witka/biosensord/internal/errors"

const (
	ErrADCRead     = errors.ErrorCode("sensor_adc_read_failed")
	ErrPinRead     = errors.ErrorCode("sensor_pin_read_failed")
	ErrBusWrite    = errors.ErrorCode("sensor_bus_write_failed")
	ErrBusRead     = errors.ErrorCode("sensor_bus_read_failed")
	ErrProbeRead   = errors.ErrorCode("sensor_probe_read_failed")
	ErrSourceRead  = errors.ErrorCode("sensor_source_read_failed")
	ErrSetupFailed = errors.ErrorCode("sensor_setup_failed")
)
