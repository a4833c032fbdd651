package log

import (
	"bytes"

	"github.com/rs/zerolog"
)

// CaptureLogger returns a debug-level JSON logger writing into the
// returned buffer. Tests install it with SetLogger and inspect the
// buffer for the structured fields they expect.
func CaptureLogger() (zerolog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return zerolog.New(&buf).Level(zerolog.DebugLevel), &buf
}
