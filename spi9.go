package tftbus

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"periph.io/x/devices/v3/tftbus/word9"
)

// SPI9 drives a controller expecting 9-bit SPI words over an 8-bit SPI bus.
//
// Write takes little endian 16-bit words, flag in bit 8 and payload in bits
// 0-7, and sends them repacked by word9 through Config.Scratch. Read is the
// plain SPI read.
type SPI9 struct {
	*SPI
	words []uint16
}

// NewSPI9 returns the 9-bit emulation transport for cfg.
//
// cfg.Scratch must hold word9.PackedLen(n) bytes for the largest write of n
// words.
func NewSPI9(cfg *Config) *SPI9 {
	s := &SPI9{SPI: NewSPI(cfg)}
	s.log = cfg.logger().WithName("spi9")
	return s
}

// Write packs p into the scratch buffer and sends it.
//
// len(p) must be a multiple of 8. A trailing half group is padded with zero
// words, which reach the controller as 0x00 commands. Most controllers end a
// RAM write on any command, so pixel data should come in multiples of 16
// bytes.
func (s *SPI9) Write(p []byte) error {
	dump(s.log, DebugWrite, "write", p)
	if s.cfg.Scratch == nil {
		s.log.Error(ErrMissingScratchBuffer, "9-bit emulation needs a scratch buffer")
		return ErrMissingScratchBuffer
	}
	if len(p)%8 != 0 {
		err := errors.Wrapf(ErrInvalidArgument, "len=%d must be divisible by 8", len(p))
		s.log.Error(err, "rejected write")
		return err
	}
	n := len(p) / 2
	out := word9.PackedLen(n)
	if len(s.cfg.Scratch) < out {
		err := errors.Wrapf(ErrInvalidArgument, "scratch buffer holds %d bytes, %d needed", len(s.cfg.Scratch), out)
		s.log.Error(err, "rejected write")
		return err
	}
	if s.cfg.SPI == nil {
		s.log.Error(ErrDeviceUnavailable, "no SPI handle for write")
		return ErrDeviceUnavailable
	}
	if cap(s.words) < n {
		s.words = make([]uint16, n)
	}
	w := s.words[:n]
	for i := range w {
		w[i] = binary.LittleEndian.Uint16(p[2*i:])
	}
	word9.Pack(s.cfg.Scratch, w)
	return withChipSelect(s.cfg.CS, func() error {
		return s.tx(s.cfg.Scratch[:out])
	})
}

func (s *SPI9) String() string {
	if s.cfg.SPI == nil {
		return "tftbus.SPI9{}"
	}
	return "tftbus.SPI9{" + s.cfg.SPI.String() + "}"
}
