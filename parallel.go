package tftbus

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
)

// Parallel is an 8-bit or 16-bit parallel bus bit-banged over GPIO lines.
//
// The width is the number of data lines. 16-bit words are little endian in
// the buffers passed to Write and Read.
//
// Write remembers the last word sent so that, with SkipEnabled, only the data
// lines whose level changes are driven. That state belongs to the instance.
type Parallel struct {
	cfg    *Config
	log    logr.Logger
	skip   SkipOptimization
	settle time.Duration
	sleep  func(time.Duration)

	prev uint16
	// dirty forces a full write of the next word after a failed one.
	dirty bool
}

// NewParallel returns the parallel transport for cfg.
//
// cfg.Data must hold 8 or 16 lines. When cfg.WR is set the data lines are
// driven low so that they match the initial write-skip state.
//
// opts can be nil to use defaults.
func NewParallel(cfg *Config, opts *Opts) (*Parallel, error) {
	if opts == nil {
		opts = &Opts{}
	}
	if n := len(cfg.Data); n != 8 && n != 16 {
		return nil, errors.Wrapf(ErrInvalidArgument, "parallel bus needs 8 or 16 data lines, got %d", n)
	}
	for i, d := range cfg.Data {
		if d == nil {
			return nil, errors.Wrapf(ErrInvalidArgument, "data line %d is nil", i)
		}
	}
	b := &Parallel{
		cfg:    cfg,
		log:    cfg.logger().WithName(fmt.Sprintf("gpio%d", len(cfg.Data))),
		skip:   opts.Skip,
		settle: opts.Settle,
		sleep:  opts.Sleep,
	}
	if b.settle == 0 {
		b.settle = time.Millisecond
	}
	if b.sleep == nil {
		b.sleep = time.Sleep
	}
	if cfg.WR != nil {
		for _, d := range cfg.Data {
			if err := d.Set(gpio.Low); err != nil {
				return nil, transferError("reset "+d.String(), err)
			}
		}
	}
	return b, nil
}

// width returns the number of bytes per word.
func (b *Parallel) width() int {
	return len(b.cfg.Data) / 8
}

// Write clocks p out one word at a time on the WR strobe.
func (b *Parallel) Write(p []byte) error {
	if b.cfg.WR == nil {
		b.log.Error(ErrDeviceUnavailable, "no WR line")
		return ErrDeviceUnavailable
	}
	step := b.width()
	if len(p)%step != 0 {
		return errors.Wrapf(ErrInvalidArgument, "len=%d is not a whole number of %d-bit words", len(p), 8*step)
	}
	dump(b.log, DebugWrite, "write", p)
	return withChipSelect(b.cfg.CS, func() error {
		for i := 0; i < len(p); i += step {
			if err := b.writeWord(b.word(p[i:])); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *Parallel) word(p []byte) uint16 {
	if b.width() == 2 {
		return binary.LittleEndian.Uint16(p)
	}
	return uint16(p[0])
}

func (b *Parallel) writeWord(w uint16) error {
	wr := b.cfg.WR
	if err := wr.Set(gpio.Low); err != nil {
		return transferError("WR low", err)
	}
	full := b.skip == SkipDisabled || b.dirty
	switch {
	case !full && w == b.prev:
		// Delay only, the data lines already hold w.
		if err := wr.Set(gpio.Low); err != nil {
			return transferError("WR low", err)
		}
	default:
		// The lines no longer match prev until WR goes high.
		b.dirty = true
		changed := w ^ b.prev
		for i, d := range b.cfg.Data {
			if !full && changed>>i&1 == 0 {
				continue
			}
			if err := d.Set(gpio.Level(w>>i&1 != 0)); err != nil {
				return transferError("set "+d.String(), err)
			}
		}
	}
	if err := wr.Set(gpio.High); err != nil {
		return transferError("WR high", err)
	}
	b.prev = w
	b.dirty = false
	return nil
}

// Read strobes RD once per word of p and samples the data lines.
func (b *Parallel) Read(p []byte) error {
	if b.cfg.RD == nil {
		b.log.Error(ErrDeviceUnavailable, "no RD line")
		return ErrDeviceUnavailable
	}
	step := b.width()
	if len(p)%step != 0 {
		return errors.Wrapf(ErrInvalidArgument, "len=%d is not a whole number of %d-bit words", len(p), 8*step)
	}
	err := withChipSelect(b.cfg.CS, func() error {
		for i := 0; i < len(p); i += step {
			w, err := b.readWord()
			if err != nil {
				return err
			}
			if step == 2 {
				binary.LittleEndian.PutUint16(p[i:], w)
			} else {
				p[i] = byte(w)
			}
		}
		return nil
	})
	if err == nil {
		dump(b.log, DebugRead, "read", p)
	}
	return err
}

func (b *Parallel) readWord() (uint16, error) {
	rd := b.cfg.RD
	if err := rd.Set(gpio.Low); err != nil {
		return 0, transferError("RD low", err)
	}
	b.sleep(b.settle)
	var w uint16
	for i := len(b.cfg.Data) - 1; i >= 0; i-- {
		l, err := b.cfg.Data[i].Get()
		if err != nil {
			return 0, transferError("sample "+b.cfg.Data[i].String(), err)
		}
		w <<= 1
		if l {
			w |= 1
		}
	}
	if err := rd.Set(gpio.High); err != nil {
		return 0, transferError("RD high", err)
	}
	return w, nil
}

func (b *Parallel) String() string {
	return fmt.Sprintf("tftbus.Parallel{%d lines, %s}", len(b.cfg.Data), b.skip)
}

// Latched16 stands for a 16-bit bus driven through an external latch. It is
// not supported: every call fails with ErrNotImplemented without touching a
// pin.
type Latched16 struct {
	log logr.Logger
}

// NewLatched16 returns the latched 16-bit transport.
func NewLatched16(cfg *Config) *Latched16 {
	return &Latched16{log: cfg.logger().WithName("gpio16-latched")}
}

// Write always fails with ErrNotImplemented.
func (l *Latched16) Write(p []byte) error {
	l.log.Error(ErrNotImplemented, "latched 16-bit write")
	return ErrNotImplemented
}

// Read always fails with ErrNotImplemented.
func (l *Latched16) Read(p []byte) error {
	return ErrNotImplemented
}

func (l *Latched16) String() string {
	return "tftbus.Latched16{}"
}
