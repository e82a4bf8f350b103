// Package tftbus moves command and pixel bytes to small TFT display
// controllers.
//
// It provides interchangeable transports for full SPI, SPI with emulated
// 9-bit words, and 8-bit or 16-bit parallel GPIO buses. Each transport
// implements Bus and handles the optional chip select itself.
//
// See the examples for how to use this package.
package tftbus

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/spi"
)

// Bus is the contract shared by every transport.
//
// Calls are synchronous and run to completion. A Bus is not safe for
// concurrent use; the caller serializes access.
type Bus interface {
	// Write sends p. p is never modified.
	Write(p []byte) error
	// Read fills p from the controller.
	Read(p []byte) error
	String() string
}

var (
	_ Bus = &SPI{}
	_ Bus = &SPI9{}
	_ Bus = &Parallel{}
	_ Bus = &Latched16{}
)

// Config is the resolved wiring of one display.
//
// It is built once when the display is attached and is only borrowed by the
// transports.
type Config struct {
	// SPI is the write handle. nil means there is no SPI bus.
	SPI spi.Conn
	// SPIRead is used for reads when set. It should be connected at
	// ReadSpeed. Without it reads run at the write clock of SPI.
	SPIRead spi.Conn

	// CS is the optional active low chip select.
	CS *Pin
	// Data holds the parallel data lines, index 0 being bit 0.
	Data []*Pin
	// WR and RD are the active low write and read strobes.
	WR *Pin
	RD *Pin

	// StartByte is prefixed on SPI reads when non-zero.
	StartByte byte
	// Scratch receives the packed stream of the 9-bit emulation.
	Scratch []byte
	// DMA is an optional buffer already mapped for the SPI controller.
	DMA *DMABuffer

	// Emulate9 selects the 9-bit emulation in New.
	Emulate9 bool
	// Latched selects the latched 16-bit transport in New.
	Latched bool

	// Logger receives errors and buffer dumps. The zero value discards.
	Logger logr.Logger
}

func (c *Config) logger() logr.Logger {
	if c.Logger.GetSink() == nil {
		return logr.Discard()
	}
	return c.Logger
}

// SkipOptimization controls whether the parallel writers skip data lines
// that already hold the right level.
type SkipOptimization int

const (
	// SkipEnabled only drives data lines whose bit changed since the previous
	// word.
	SkipEnabled SkipOptimization = iota
	// SkipDisabled drives every data line for every word.
	SkipDisabled
)

func (s SkipOptimization) String() string {
	switch s {
	case SkipEnabled:
		return "SkipEnabled"
	case SkipDisabled:
		return "SkipDisabled"
	default:
		return "SkipOptimization(?)"
	}
}

// Opts tunes the parallel transports.
type Opts struct {
	Skip SkipOptimization
	// Settle is how long RD is held low before sampling (default: 1ms).
	Settle time.Duration
	// Sleep waits for the settle delay (default: time.Sleep).
	Sleep func(time.Duration)
}

// New returns the transport matching cfg.
//
// A configured SPI handle selects SPI, or SPI9 when cfg.Emulate9 is set.
// Otherwise 8 data lines select an 8-bit Parallel bus and 16 data lines a
// 16-bit one, or Latched16 when cfg.Latched is set. cfg.Latched without 16
// data lines is ErrInvalidArgument.
//
// opts can be nil to use defaults.
func New(cfg *Config, opts *Opts) (Bus, error) {
	switch {
	case cfg.SPI != nil && cfg.Emulate9:
		return NewSPI9(cfg), nil
	case cfg.SPI != nil:
		return NewSPI(cfg), nil
	case cfg.Latched && len(cfg.Data) != 16:
		return nil, errors.Wrapf(ErrInvalidArgument, "latched bus needs 16 data lines, got %d", len(cfg.Data))
	case cfg.Latched:
		return NewLatched16(cfg), nil
	case len(cfg.Data) == 8 || len(cfg.Data) == 16:
		return NewParallel(cfg, opts)
	}
	return nil, errors.Wrapf(ErrDeviceUnavailable, "no SPI bus and %d data lines", len(cfg.Data))
}
