package telemetry

import (
	"io"

	"codeberg.org/witka/biosensord/internal/errors"
	"codeberg.org/witka/biosensord/internal/logger"
	"go.bug.st/serial"
)

// DefaultBaudRate matches the downstream receiver.
const DefaultBaudRate = 115200

type serialEmitter struct {
	port    serial.Port
	console io.Writer
}

// NewSerialEmitter opens the named port (8N1) and returns an emitter that
// writes each record to the serial link and mirrors it to console.
func NewSerialEmitter(portName string, baudRate int, console io.Writer) (Emitter, error) {
	errFactory := errors.New()

	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}

	port, err := serial.Open(portName, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, errFactory.Wrap(ErrPortOpen, err)
	}

	logger.Info().Str("port", portName).Int("baud", baudRate).Msg("Serial transport opened")

	return &serialEmitter{port: port, console: console}, nil
}

func (e *serialEmitter) Emit(r *Record) error {
	line := r.Encode()

	if _, err := e.port.Write(line); err != nil {
		return errors.New().Wrap(ErrTransportWrite, err)
	}
	if e.console != nil {
		e.console.Write(line) //nolint:errcheck // console mirror is best effort
	}

	return nil
}

func (e *serialEmitter) Close() error {
	if err := e.port.Close(); err != nil {
		return errors.New().Wrap(ErrTransportClose, err)
	}
	return nil
}

type consoleEmitter struct {
	w io.Writer
}

// NewConsoleEmitter writes records to the console only, for development
// without a serial link.
func NewConsoleEmitter(w io.Writer) Emitter {
	return &consoleEmitter{w: w}
}

func (e *consoleEmitter) Emit(r *Record) error {
	if _, err := e.w.Write(r.Encode()); err != nil {
		return errors.New().Wrap(ErrTransportWrite, err)
	}
	return nil
}

func (e *consoleEmitter) Close() error {
	return nil
}
