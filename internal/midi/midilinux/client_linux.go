//go:build linux
// +build linux

package midilinux

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"go.uber.org/multierr"

	"github.com/fretkey/fretkey/sdk/contracts"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices       = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice   = errors.New("invalid MIDI device")
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
)

// ClientMid manages MIDI operations on Linux through the rtmidi (ALSA) driver.
// It mirrors the Darwin client: connections are made on SelectDevice, events
// flow into a caller-owned channel, and Stop tears everything down once.
type ClientMid struct {
	logger          contracts.Logger
	eventChannel    atomic.Value               // Atomic storage for the event channel to ensure thread safety.
	drv             *rtmididrv.Driver          // rtmidi driver instance for MIDI operations.
	inPort          drivers.In                 // Input port for receiving MIDI events.
	stopFn          func()                     // Stops the active listener.
	midiEventFilter *contracts.MIDIEventFilter // Filter for specific MIDI events.
	errs            chan error                 // Listener errors, including device loss.
	mu              sync.Mutex                 // Mutex for thread safety on shared resources.
	stopOnce        sync.Once                  // Ensures Stop() is executed only once.
}

// NewMIDIClient initializes a new ClientMid for handling MIDI events on Linux.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("error initializing rtmidi driver: %w", err)
	}
	options.Logger.Info("MIDI client successfully created")

	return &ClientMid{
		logger:          options.Logger,
		drv:             drv,
		midiEventFilter: options.MIDIEventFilter,
		errs:            make(chan error, 1),
	}, nil
}

// ListDevices retrieves and returns available MIDI input ports.
// If no devices are found, an error is logged and returned.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	ins, err := m.drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(ins))
	for i, in := range ins {
		devices[i] = contracts.DeviceInfo{
			Name:       in.String(),
			EntityName: in.String(),
		}
	}
	return devices, nil
}

// SelectDevice opens a MIDI input port by ID and starts listening on it.
// If a port is already open, it is closed first.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ins, err := m.drv.Ins()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI inputs: %w", err)
	}
	if deviceID < 0 || deviceID >= len(ins) {
		m.logger.Error(ErrInvalidMIDIDevice.Error())
		return ErrInvalidMIDIDevice
	}

	m.closeConn()

	in := ins[deviceID]
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", in.String()))

	if err := in.Open(); err != nil {
		m.logger.Error(ErrMIDIConnectionError.Error())
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	stop, err := midi.ListenTo(in, m.handleMessage, midi.HandleError(m.handleListenerError))
	if err != nil {
		_ = in.Close()
		m.logger.Error(ErrMIDIConnectionError.Error())
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.inPort = in
	m.stopFn = stop
	m.logger.Info("MIDI device successfully connected")
	return nil
}

// handleMessage converts note messages into events on the caller's channel.
// gomidi reports a velocity-zero note-on as a note end, so the command here is
// already normalized.
func (m *ClientMid) handleMessage(msg midi.Message, timestampms int32) {
	eventChannel, _ := m.eventChannel.Load().(chan contracts.MIDI)
	if eventChannel == nil {
		m.logger.Debug("MIDI event before capture started; dropped")
		return
	}

	var channel, note, velocity uint8
	var command byte
	switch {
	case msg.GetNoteStart(&channel, &note, &velocity):
		command = byte(contracts.NoteOn)
	case msg.GetNoteEnd(&channel, &note):
		command = byte(contracts.NoteOff)
		velocity = 0
	default:
		return
	}

	event := contracts.MIDI{
		Timestamp: uint64(time.Now().UTC().UnixNano()),
		Command:   command,
		Channel:   channel + 1,
		Note:      note,
		Velocity:  velocity,
	}

	if !m.midiEventFilter.Allows(event.Command) {
		return
	}
	select {
	case eventChannel <- event:
	default:
		m.logger.Warn("Event buffer full; dropping MIDI event")
	}
}

// handleListenerError surfaces driver errors, such as the port disappearing,
// on the Errors channel.
func (m *ClientMid) handleListenerError(err error) {
	m.logger.Warn("MIDI listener error", m.logger.Field().Error("error", err))
	select {
	case m.errs <- err:
	default:
	}
}

// StartCapture begins capturing MIDI events by storing the event channel.
func (m *ClientMid) StartCapture(eventChannel chan contracts.MIDI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}

	m.logger.Info("Starting MIDI event capture")
	m.eventChannel.Store(eventChannel)
}

// Errors exposes listener failures. On Linux the rtmidi driver reports
// read errors here when the device goes away.
func (m *ClientMid) Errors() <-chan error {
	return m.errs
}

// Stop halts MIDI event capturing, closes the input port, and shuts down the
// driver. This function ensures it only executes once, even if called
// multiple times.
func (m *ClientMid) Stop() error {
	var err error
	m.stopOnce.Do(func() {
		m.logger.Info("Stopping MIDI capture")
		m.mu.Lock()
		defer m.mu.Unlock()

		m.closeConn()
		err = multierr.Append(err, m.drv.Close())

		// Store a dummy channel to prevent further writes and avoid any panic.
		m.eventChannel.Store(make(chan contracts.MIDI))
		m.logger.Info("MIDI capture stopped")
	})
	return err
}

// closeConn stops the listener and closes the port. Callers hold the mutex.
func (m *ClientMid) closeConn() {
	if m.stopFn != nil {
		m.stopFn()
		m.stopFn = nil
	}
	if m.inPort != nil {
		_ = m.inPort.Close()
		m.inPort = nil
	}
}
