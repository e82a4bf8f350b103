package tftbus

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
)

// Line is a GPIO line whose access may put the caller to sleep, for example
// a Linux GPIO character device line where every access is an ioctl, or a pin
// behind an I²C expander.
//
// *gpio.Line from github.com/mkch/gpio satisfies it.
type Line interface {
	Value() (byte, error)
	SetValue(value byte) error
}

// Pin is one digital line used by a bus.
//
// A Pin carries two access paths and the CanSleep flag that picks between
// them. Fast is used when the line can be driven without sleeping, Slow
// otherwise. The flag is consulted on every access.
type Pin struct {
	Name     string
	Fast     gpio.PinIO
	Slow     Line
	CanSleep bool
}

// NewPin returns a Pin accessed through a non-sleeping periph.io pin.
func NewPin(p gpio.PinIO) *Pin {
	return &Pin{Name: p.Name(), Fast: p}
}

// NewLinePin returns a Pin whose every access may sleep.
func NewLinePin(name string, l Line) *Pin {
	return &Pin{Name: name, Slow: l, CanSleep: true}
}

// Set drives the line to l.
func (p *Pin) Set(l gpio.Level) error {
	if p.CanSleep {
		if p.Slow == nil {
			return p.unavailable()
		}
		var v byte
		if l {
			v = 1
		}
		return p.Slow.SetValue(v)
	}
	if p.Fast == nil {
		return p.unavailable()
	}
	return p.Fast.Out(l)
}

// Get samples the line.
func (p *Pin) Get() (gpio.Level, error) {
	if p.CanSleep {
		if p.Slow == nil {
			return gpio.Low, p.unavailable()
		}
		v, err := p.Slow.Value()
		if err != nil {
			return gpio.Low, err
		}
		// Any non-zero value is high.
		return gpio.Level(v != 0), nil
	}
	if p.Fast == nil {
		return gpio.Low, p.unavailable()
	}
	return p.Fast.Read(), nil
}

func (p *Pin) String() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Fast != nil {
		return p.Fast.String()
	}
	return "pin"
}

func (p *Pin) unavailable() error {
	return errors.Wrapf(ErrDeviceUnavailable, "%s has no access path for CanSleep=%t", p, p.CanSleep)
}
