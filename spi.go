package tftbus

import (
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// ReadSpeed is the clock SPIRead connections are expected to run at.
const ReadSpeed = 2 * physic.MegaHertz

// maxStartByteRead is the size of the staging buffer used when a start byte
// precedes a read.
const maxStartByteRead = 32

// DMABuffer is a transmit buffer already mapped for the SPI controller.
type DMABuffer struct {
	Buf  []byte
	Addr uint64
}

// holds reports whether p starts at the beginning of the mapped buffer.
func (d *DMABuffer) holds(p []byte) bool {
	if d == nil || d.Addr == 0 || len(p) == 0 || len(d.Buf) < len(p) {
		return false
	}
	return &d.Buf[0] == &p[0]
}

// MappedConn is implemented by SPI connections that can transmit from a
// buffer already mapped at a bus address, skipping the copy.
type MappedConn interface {
	TxMapped(w []byte, addr uint64) error
}

// SPI is the full SPI transport.
type SPI struct {
	cfg *Config
	log logr.Logger
}

// NewSPI returns the SPI transport for cfg.
//
// A missing SPI handle is reported by each call, not here.
func NewSPI(cfg *Config) *SPI {
	return &SPI{cfg: cfg, log: cfg.logger().WithName("spi")}
}

// Write sends p in a single synchronous transfer.
func (s *SPI) Write(p []byte) error {
	if s.cfg.SPI == nil {
		s.log.Error(ErrDeviceUnavailable, "no SPI handle for write")
		return ErrDeviceUnavailable
	}
	dump(s.log, DebugWrite, "write", p)
	return withChipSelect(s.cfg.CS, func() error {
		return s.tx(p)
	})
}

// tx writes p without touching chip select.
func (s *SPI) tx(p []byte) error {
	if d := s.cfg.DMA; d.holds(p) {
		if m, ok := s.cfg.SPI.(MappedConn); ok {
			return transferError("spi mapped write", m.TxMapped(p, d.Addr))
		}
	}
	return transferError("spi write", s.cfg.SPI.TxPackets([]spi.Packet{{W: p}}))
}

// Read fills p from the bus.
//
// With a start byte configured, p is limited to 32 bytes and the start byte,
// with both low bits set, is clocked out while p is received.
func (s *SPI) Read(p []byte) error {
	c := s.cfg.SPIRead
	if c == nil {
		c = s.cfg.SPI
		if c != nil {
			s.log.V(1).Info("no read handle, reading at the write clock")
		}
	}
	if c == nil {
		s.log.Error(ErrDeviceUnavailable, "no SPI handle for read")
		return ErrDeviceUnavailable
	}
	pkt := spi.Packet{R: p}
	if s.cfg.StartByte != 0 {
		if len(p) > maxStartByteRead {
			err := errors.Wrapf(ErrInvalidArgument, "read of %d bytes can't exceed %d with a start byte", len(p), maxStartByteRead)
			s.log.Error(err, "rejected read")
			return err
		}
		var tx [maxStartByteRead]byte
		tx[0] = s.cfg.StartByte | 0x03
		pkt.W = tx[:len(p)]
		dump(s.log, DebugRead, "read tx", pkt.W)
	}
	err := withChipSelect(s.cfg.CS, func() error {
		return transferError("spi read", c.TxPackets([]spi.Packet{pkt}))
	})
	if err == nil {
		dump(s.log, DebugRead, "read", p)
	}
	return err
}

func (s *SPI) String() string {
	if s.cfg.SPI == nil {
		return "tftbus.SPI{}"
	}
	return "tftbus.SPI{" + s.cfg.SPI.String() + "}"
}
