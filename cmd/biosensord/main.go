package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/witka/biosensord/internal/config"
	"codeberg.org/witka/biosensord/internal/hw"
	"codeberg.org/witka/biosensord/internal/logger"
	"codeberg.org/witka/biosensord/internal/scheduler"
	"codeberg.org/witka/biosensord/internal/sensor"
	"codeberg.org/witka/biosensord/internal/telemetry"
)

// Analog front-end wiring: ECG on ADC2, GSR on ADC0, EMG on ADC1, with
// the amplifier's lead-off outputs on two GPIOs.
const (
	iioDevice     = 0
	iioBits       = 12
	ecgChannel    = 2
	gsrChannel    = 0
	muscleChannel = 1

	leadOffPlusPin  = "GPIO19"
	leadOffMinusPin = "GPIO18"

	simBeatPeriodMS = 600 // 100 BPM
	simBodyTempC    = 36.8
	primingLogEvery = 10
)

var (
	cfg     *config.Config
	sched   *scheduler.Scheduler
	emitter telemetry.Emitter
	archive telemetry.Collector
)

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	clock := hw.NewClock()

	drivers, closeHW, err := buildDrivers(clock)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize sensors")
	}
	defer closeHW()

	emitter, err = buildEmitter()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open telemetry transport")
	}

	archive, err = telemetry.NewService(telemetry.Config{
		DBPath:  cfg.Database,
		Enabled: cfg.Archive,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telemetry archive")
	}

	sched = scheduler.New(clock, drivers)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	prime(ctx)

	if err := loop(ctx); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}
	cleanup()
}

// buildDrivers wires either simulated or real hardware behind the same
// driver interfaces.
func buildDrivers(clock hw.Clock) (scheduler.Drivers, func(), error) {
	if cfg.Simulation {
		logger.Info().Msg("Simulation mode: synthetic sensors active")
		bus := sensor.NewSimBus(simBodyTempC)
		return scheduler.Drivers{
			ECG:      sensor.NewECG(sensor.NewSimADC(clock, 32000, 8000, 800, 500), sensor.SimPin{}, sensor.SimPin{}),
			GSR:      sensor.NewGSR(sensor.NewSimADC(clock, 21000, 3000, 5000, 300)),
			Muscle:   sensor.NewMuscle(sensor.NewSimADC(clock, 15000, 6000, 1200, 800)),
			Env:      sensor.NewEnv(sensor.NewSimEnvProbe(clock)),
			BodyTemp: sensor.NewBodyTemp(bus, bus, clock),
			Pulse:    sensor.NewPulse(sensor.NewSimPulseSource(simBeatPeriodMS), clock),
		}, func() {}, nil
	}

	bus, err := hw.NewPeriphBus(cfg.I2CBus, cfg.SCLPin, cfg.SDAPin)
	if err != nil {
		return scheduler.Drivers{}, nil, err
	}

	loPlus, err := hw.NewPeriphPin(leadOffPlusPin)
	if err != nil {
		return scheduler.Drivers{}, nil, err
	}
	loMinus, err := hw.NewPeriphPin(leadOffMinusPin)
	if err != nil {
		return scheduler.Drivers{}, nil, err
	}

	// The optical front end needs its own FIFO driver; until one is wired
	// the channel polls a null source and reports benign defaults.
	logger.Warn().Msg("No optical front end configured, pulse channel degraded")

	return scheduler.Drivers{
		ECG:      sensor.NewECG(hw.NewIIOPin(iioDevice, ecgChannel, iioBits), loPlus, loMinus),
		GSR:      sensor.NewGSR(hw.NewIIOPin(iioDevice, gsrChannel, iioBits)),
		Muscle:   sensor.NewMuscle(hw.NewIIOPin(iioDevice, muscleChannel, iioBits)),
		Env:      sensor.NewEnv(sensor.NullEnvProbe{}),
		BodyTemp: sensor.NewBodyTemp(bus, bus, clock),
		Pulse:    sensor.NewPulse(sensor.NullPulseSource{}, clock),
	}, func() { bus.Close() }, nil
}

func buildEmitter() (telemetry.Emitter, error) {
	if cfg.Port == "" {
		logger.Info().Msg("No serial port configured, emitting to console only")
		return telemetry.NewConsoleEmitter(os.Stdout), nil
	}
	return telemetry.NewSerialEmitter(cfg.Port, cfg.BaudRate, os.Stdout)
}

// prime runs the fixed warm-up ticks so the heart-rate window fills
// before the first record is emitted.
func prime(ctx context.Context) {
	logger.Info().
		Int("ticks", scheduler.PrimingTicks).
		Dur("tick", scheduler.BaseTick).
		Msg("Priming sensors")

	ticker := time.NewTicker(scheduler.BaseTick)
	defer ticker.Stop()

	for i := 0; i < scheduler.PrimingTicks; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := sched.Tick(); err != nil {
				logger.Debug().Err(err).Msg("Priming cycle failed")
			}
			if i%primingLogEvery == 0 {
				logger.Info().Int("second", i/primingLogEvery+1).Msg("Collecting samples")
			}
		}
	}

	logger.Info().Msg("Priming complete, starting acquisition")
}

func loop(ctx context.Context) error {
	ticker := time.NewTicker(scheduler.BaseTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			record, err := sched.Tick()
			if err != nil {
				// Whole cycle abandoned: caches untouched, nothing emitted.
				logger.Warn().Err(err).Msg("Read cycle failed, skipping tick")
				continue
			}

			if err := emitter.Emit(record); err != nil {
				logger.Error().Err(err).Msg("Failed to emit record")
			}
			if err := archive.Record(ctx, record); err != nil {
				logger.Error().Err(err).Msg("Failed to archive record")
			}
		}
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func cleanup() {
	if err := emitter.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close telemetry transport")
	}
	if err := archive.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close telemetry archive")
	}
	logger.Info().Msg("Exiting...")
}
