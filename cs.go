package tftbus

import (
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/gpio"
)

// withChipSelect runs body with the active low chip select asserted.
//
// A nil cs runs body untouched. Otherwise cs is released on every exit path
// and a release failure is combined with the error of body.
func withChipSelect(cs *Pin, body func() error) (err error) {
	if cs == nil {
		return body()
	}
	defer func() {
		err = multierr.Append(err, transferError("deassert "+cs.String(), cs.Set(gpio.High)))
	}()
	if err := cs.Set(gpio.Low); err != nil {
		return transferError("assert "+cs.String(), err)
	}
	return body()
}
