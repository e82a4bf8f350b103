// Package tftbus moves command and pixel bytes to small TFT display
// controllers over SPI or a bit-banged parallel GPIO bus.
//
// The package is the transport layer only. Controller command sets, pixel
// format conversion and panel initialisation live in the display drivers
// using it.
//
// # Transports
//
// Every transport implements Bus:
//
//	SPI        full SPI, optional start byte on reads, optional pre-mapped buffer
//	SPI9       9-bit SPI words emulated on 8-bit hardware (see package word9)
//	Parallel   8-bit or 16-bit GPIO bus, WR strobe for writes, RD strobe for reads
//	Latched16  placeholder, always fails with ErrNotImplemented
//
// New picks the transport from the Config the same way the display core
// does: SPI when a connection is present, otherwise the parallel bus
// matching the number of data lines.
//
// # Hardware Connection
//
// SPI wiring, with the chip select driven by the SPI controller or by any GPIO:
//
//	Display Pin → System Pin
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	SDO/MISO    → SPI Data (MISO), only needed for reads
//	CS          → SPI Chip Select, or a GPIO set as Config.CS
//
// Parallel wiring (8080 style):
//
//	DB0..DB7    → 8 GPIOs (DB0..DB15 for 16-bit)
//	/WR         → GPIO set as Config.WR
//	/RD         → GPIO set as Config.RD, only needed for reads
//	/CS         → GPIO set as Config.CS, or GND
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/physic"
//		"periph.io/x/conn/v3/spi"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/tftbus"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		p, _ := spireg.Open("")
//		c, _ := p.Connect(32*physic.MegaHertz, spi.Mode0, 8)
//
//		bus, _ := tftbus.New(&tftbus.Config{SPI: c}, nil)
//		bus.Write([]byte{0x01}) // the controller's software reset
//	}
//
// A 8-bit parallel bus:
//
//	cfg := &tftbus.Config{WR: tftbus.NewPin(gpioreg.ByName("GPIO17"))}
//	for _, name := range []string{"GPIO5", "GPIO6", ...} {
//		cfg.Data = append(cfg.Data, tftbus.NewPin(gpioreg.ByName(name)))
//	}
//	bus, _ := tftbus.NewParallel(cfg, nil)
//
// # Sleeping Pins
//
// A Pin either toggles without sleeping (memory mapped periph.io drivers) or
// goes through a Line that may sleep, such as a GPIO character device line
// opened with github.com/mkch/gpio. The CanSleep flag decides on each access.
// Transports using sleeping pins must not be called where sleeping is not
// allowed.
//
// # Write Skipping
//
// Parallel remembers the previous word written. With SkipEnabled, the
// default, only data lines whose bit changed are driven, and a repeated word
// only toggles the strobe. This roughly halves the pin writes on typical
// streams. SkipDisabled drives every line for every word.
//
// # Concurrency
//
// Calls block until the whole buffer is transferred and can't be cancelled.
// No Bus is safe for concurrent use, the caller serializes access.
//
// # Errors
//
// Failures are reported with ErrDeviceUnavailable, ErrInvalidArgument,
// ErrMissingScratchBuffer, ErrNotImplemented, or a *TransferError matching
// ErrHardwareTransferFailed. Use errors.Is. Chip select is always released
// before a call returns.
//
// # Debugging
//
// Set Config.Logger to a logr.Logger. Written buffers are dumped at
// V(DebugWrite) and read buffers at V(DebugRead).
package tftbus
