// Package cmd wires the translation engine, MIDI client, and keystroke
// injector into the fretkey command-line program.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/fretkey/fretkey/internal/engine"
	"github.com/fretkey/fretkey/internal/logger"
	"github.com/fretkey/fretkey/internal/mapping"
	"github.com/fretkey/fretkey/sdk/contracts"
	"github.com/fretkey/fretkey/sdk/midi"
	"github.com/fretkey/fretkey/sdk/typist"
)

// Exit codes distinguish why the process stopped.
const (
	ExitOK     = 0
	ExitConfig = 1 // Mapping file or flag problems.
	ExitDevice = 2 // MIDI device problems, including mid-session loss.
)

// eventBufferSize bounds the channel between the MIDI driver and the engine.
const eventBufferSize = 100

var (
	debug      bool
	tuningFlag string
)

var rootCmd = &cobra.Command{
	Use:   "fretkey <device-name> <mapping-file>",
	Short: "Play your computer keyboard with a MIDI guitar",
	Long: `fretkey listens to a MIDI guitar and turns notes into keystrokes.

Each MIDI channel is one guitar string. The mapping file assigns a keyboard
key to every (string, fret) cell you care about; sounding a note holds the
key down, muting the string releases it. The device name is matched
case-insensitively against the available MIDI inputs.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&tuningFlag, "tuning", "",
		"open-string MIDI notes, high to low, comma-separated (default standard tuning)")
}

// Execute runs the CLI and exits the process with the classified code on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitError carries the exit code for a classified failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func configErr(err error) error { return &exitError{code: ExitConfig, err: err} }
func deviceErr(err error) error { return &exitError{code: ExitDevice, err: err} }

func exitCode(err error) int {
	var xe *exitError
	if errors.As(err, &xe) {
		return xe.code
	}
	return ExitConfig
}

// newLogger builds the session logger at the level selected by --debug.
func newLogger() contracts.Logger {
	log := logger.NewZapLogger()
	log.SetLevel(logLevel())
	return log
}

func logLevel() contracts.LogLevel {
	if debug {
		return contracts.DebugLevel
	}
	return contracts.InfoLevel
}

// parseTuning reads the --tuning flag, falling back to standard tuning when
// it is unset.
func parseTuning(flag string) ([mapping.NumStrings]uint8, error) {
	if flag == "" {
		return mapping.StandardTuning, nil
	}
	parts := strings.Split(flag, ",")
	if len(parts) != mapping.NumStrings {
		return mapping.StandardTuning,
			fmt.Errorf("tuning needs %d notes, got %d", mapping.NumStrings, len(parts))
	}
	var tuning [mapping.NumStrings]uint8
	for i, part := range parts {
		note, err := strconv.ParseUint(strings.TrimSpace(part), 10, 7)
		if err != nil {
			return mapping.StandardTuning, fmt.Errorf("tuning note %q: %w", part, err)
		}
		tuning[i] = uint8(note)
	}
	return tuning, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	deviceName, mappingPath := args[0], args[1]

	log := newLogger()
	log.Info("Session starting",
		log.Field().String("session", uuid.NewString()),
		log.Field().String("device", deviceName),
		log.Field().String("mapping", mappingPath))

	tuning, err := parseTuning(tuningFlag)
	if err != nil {
		return configErr(err)
	}
	table, err := mapping.Load(mappingPath, tuning)
	if err != nil {
		return configErr(err)
	}
	fmt.Fprint(cmd.OutOrStdout(), table.Grid())

	injector, err := typist.NewTypist(contracts.WithTypistLogger(log))
	if err != nil {
		return deviceErr(err)
	}
	async := typist.NewAsync(injector, log, 0)

	client, err := midi.NewMIDIClient(
		contracts.WithLogger(log),
		contracts.WithLogLevel(logLevel()),
		contracts.WithClientName("fretkey"),
		contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
		}),
	)
	if err != nil {
		return closeAndFail(async, deviceErr(err))
	}

	devices, err := client.ListDevices()
	if err != nil {
		return closeAndFail(async, deviceErr(err))
	}
	index, err := midi.FindDevice(devices, deviceName)
	if err != nil {
		return closeAndFail(async, deviceErr(err))
	}
	log.Info("MIDI device matched",
		log.Field().Int("deviceID", index),
		log.Field().String("deviceName", devices[index].String()))
	if err := client.SelectDevice(index); err != nil {
		return closeAndFail(async, deviceErr(err))
	}

	eng := engine.New(table, async, log)
	events := make(chan contracts.MIDI, eventBufferSize)
	client.StartCapture(events)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		eng.Run(ctx, events)
	}()

	// Block until the user interrupts or the driver reports the device gone.
	var deviceLost error
	select {
	case <-ctx.Done():
	case driverErr := <-client.Errors():
		deviceLost = driverErr
		log.Error("MIDI device lost", log.Field().Error("error", deviceLost))
	}

	// Shutdown order matters: stop intake first, let the engine release
	// every held key into the injection queue, then drain that queue
	// before closing the injector. No key stays stuck.
	stop()
	<-done
	shutdownErr := multierr.Combine(client.Stop(), async.Close())
	if shutdownErr != nil {
		log.Warn("Shutdown incomplete", log.Field().Error("error", shutdownErr))
	}

	if deviceLost != nil {
		return deviceErr(fmt.Errorf("midi device lost: %w", deviceLost))
	}
	log.Info("Session ended")
	return nil
}

// closeAndFail tears down the keystroke injector before surfacing a startup
// error, so a created virtual keyboard never outlives the process.
func closeAndFail(async *typist.Async, err error) error {
	_ = async.Close()
	return err
}
