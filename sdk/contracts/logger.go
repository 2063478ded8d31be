package contracts

import "time"

// LogLevel represents the severity level for logging.
type LogLevel int

const (
	// InfoLevel is the default level: session progress at a glance.
	InfoLevel LogLevel = iota
	// DebugLevel adds per-event translation detail (string, fret, key, action).
	DebugLevel
	// ErrorLevel indicates serious issues that need attention.
	ErrorLevel
	// WarnLevel indicates survivable conditions that should be monitored.
	WarnLevel
	// FatalLevel indicates errors the process cannot continue past.
	FatalLevel
)

// Field builds one structured log field. Every method returns a fresh Field,
// so calls can be chained off Logger.Field() and passed as variadic arguments.
type Field interface {
	Bool(key string, val bool) Field
	Int(key string, val int) Field
	Float64(key string, val float64) Field
	String(key string, val string) Field
	Time(key string, val time.Time) Field
	Int64(key string, val int64) Field
	Error(key string, val error) Field
	Uint64(key string, val uint64) Field
	Uint8(key string, val uint8) Field
}

// Logger is the logging contract shared by every component. Implementations
// must be safe for concurrent use: MIDI backends log from driver callbacks.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	Field() Field

	SetLevel(level LogLevel)
}
