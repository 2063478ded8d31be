package contracts

// Masks splitting a MIDI status byte into its command and channel nibbles.
const (
	StatusCommandMask = 0xF0
	StatusChannelMask = 0x0F
)

// MIDI represents one channel-voice event as delivered by a backend.
type MIDI struct {
	Timestamp uint64 // Timestamp indicates the time the event occurred (ns, UTC).
	Command   byte   // Command is the masked status high nibble (NoteOn, NoteOff).
	Channel   uint8  // Channel is the 1-based MIDI channel (1-16).
	Note      byte   // Note is the MIDI note number (0-127).
	Velocity  byte   // Velocity is the strength of the note being played (0-127).
}

// ParseEvent splits a raw status byte into command and 1-based channel and
// packs the full event. Backends that see raw bytes (CoreMIDI packets, winmm
// dwParam words) all decode through here so the channel numbering matches the
// mapping files.
func ParseEvent(status, note, velocity byte, timestamp uint64) MIDI {
	return MIDI{
		Timestamp: timestamp,
		Command:   status & StatusCommandMask,
		Channel:   uint8(status&StatusChannelMask) + 1,
		Note:      note,
		Velocity:  velocity,
	}
}

// ClientMIDI defines an interface for MIDI client operations.
type ClientMIDI interface {
	Stop() error                         // Stops the MIDI client and releases resources.
	ListDevices() ([]DeviceInfo, error)  // Lists all available MIDI devices.
	SelectDevice(deviceID int) error     // Selects a MIDI device by its ID for communication.
	StartCapture(eventChannel chan MIDI) // Starts capturing MIDI events and sends them to the specified channel.
	Errors() <-chan error                // Reports fatal mid-session failures, e.g. device disconnect.
}
