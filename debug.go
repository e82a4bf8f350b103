package tftbus

import (
	"encoding/hex"

	"github.com/go-logr/logr"
)

// Verbosity levels for buffer dumps.
const (
	DebugWrite = 2
	DebugRead  = 3
)

// maxDump caps the number of bytes rendered per dump.
const maxDump = 64

func dump(log logr.Logger, level int, msg string, p []byte) {
	l := log.V(level)
	if !l.Enabled() {
		return
	}
	b := p
	if len(b) > maxDump {
		b = b[:maxDump]
	}
	l.Info(msg, "len", len(p), "buf", hex.EncodeToString(b))
}
