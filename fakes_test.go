package tftbus

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi"
)

// trace collects pin and bus operations in order, rendered as "CS=L",
// "D3=H", "D0?" (sample) or "spi".
type trace struct {
	ops []string
}

func (t *trace) add(op string) {
	t.ops = append(t.ops, op)
}

func (t *trace) reset() {
	t.ops = nil
}

// count returns the number of operations starting with prefix.
func (t *trace) count(prefix string) int {
	n := 0
	for _, op := range t.ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

func level(l gpio.Level) string {
	if l {
		return "H"
	}
	return "L"
}

// recPin is a non-sleeping pin that records every access.
type recPin struct {
	gpiotest.Pin
	t   *trace
	err error
	// highErr fails only driving the pin high.
	highErr error
}

func (p *recPin) Out(l gpio.Level) error {
	p.t.add(p.N + "=" + level(l))
	if p.err != nil {
		return p.err
	}
	if l == gpio.High && p.highErr != nil {
		return p.highErr
	}
	return p.Pin.Out(l)
}

func (p *recPin) Read() gpio.Level {
	p.t.add(p.N + "?")
	return p.Pin.Read()
}

// recLine is a sleeping line that records every access.
type recLine struct {
	name string
	t    *trace
	v    byte
	err  error
}

func (l *recLine) Value() (byte, error) {
	l.t.add(l.name + "?")
	return l.v, l.err
}

func (l *recLine) SetValue(v byte) error {
	l.t.add(fmt.Sprintf("%s=%s", l.name, level(v != 0)))
	if l.err != nil {
		return l.err
	}
	l.v = v
	return nil
}

func newRecPin(t *trace, name string) (*Pin, *recPin) {
	r := &recPin{Pin: gpiotest.Pin{N: name}, t: t}
	return NewPin(r), r
}

// dataPins returns n recorded data lines named D0..Dn-1.
func dataPins(t *trace, n int) ([]*Pin, []*recPin) {
	pins := make([]*Pin, n)
	recs := make([]*recPin, n)
	for i := range pins {
		pins[i], recs[i] = newRecPin(t, fmt.Sprintf("D%d", i))
	}
	return pins, recs
}

// fakeConn is a spi.Conn recording the packets it is given.
type fakeConn struct {
	t       *trace
	packets []spi.Packet
	mapped  []uint64
	rx      []byte
	err     error
}

func (c *fakeConn) String() string { return "fake" }

func (c *fakeConn) Halt() error { return nil }

func (c *fakeConn) Duplex() conn.Duplex { return conn.Full }

func (c *fakeConn) Tx(w, r []byte) error {
	return c.TxPackets([]spi.Packet{{W: w, R: r}})
}

func (c *fakeConn) TxPackets(p []spi.Packet) error {
	if c.t != nil {
		c.t.add("spi")
	}
	for _, pkt := range p {
		// Keep a copy, callers reuse their buffers.
		cp := spi.Packet{BitsPerWord: pkt.BitsPerWord, KeepCS: pkt.KeepCS}
		if pkt.W != nil {
			cp.W = append([]byte{}, pkt.W...)
		}
		if pkt.R != nil {
			copy(pkt.R, c.rx)
			cp.R = pkt.R
		}
		c.packets = append(c.packets, cp)
	}
	return c.err
}

// mappedConn also implements MappedConn.
type mappedConn struct {
	fakeConn
}

func (c *mappedConn) TxMapped(w []byte, addr uint64) error {
	if c.t != nil {
		c.t.add("spi-mapped")
	}
	c.mapped = append(c.mapped, addr)
	c.packets = append(c.packets, spi.Packet{W: append([]byte{}, w...)})
	return c.err
}

var _ spi.Conn = &fakeConn{}
var _ MappedConn = &mappedConn{}
var _ Line = &recLine{}
