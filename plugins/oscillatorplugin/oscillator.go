// Package main builds as a Go plugin (-buildmode=plugin) exporting a
// NewComponent symbol, loadable by circuitgo/plugin. Grounded on
// original_source/example/oscillator-plugin/DspOscillator.cpp: a
// no-input, one-output Component producing a running sine wave sample
// per tick.
package main

import (
	"math"

	"circuitgo/component"
	"circuitgo/internal/signalbus"
)

type oscillator struct {
	phase     float64
	step      float64
	amplitude float64
}

func newOscillator(freqHz, sampleRateHz, amplitude float64) *oscillator {
	return &oscillator{step: 2 * math.Pi * freqHz / sampleRateHz, amplitude: amplitude}
}

func (o *oscillator) Process(inputs, outputs *signalbus.SignalBus) {
	outputs.SetValue(0, o.amplitude*math.Sin(o.phase))
	o.phase += o.step
	if o.phase > 2*math.Pi {
		o.phase -= 2 * math.Pi
	}
}

// NewComponent is the exported symbol circuitgo/plugin resolves. A
// fixed 440Hz tone at a 48kHz tick rate, full amplitude: a plugin's
// parameters are baked in at build time since the stdlib plugin ABI has
// no call-time argument-passing convention of its own beyond the
// function signature.
func NewComponent() *component.Component {
	osc := newOscillator(440, 48000, 1.0)
	c := component.New(osc, component.InOrder)
	c.SetOutputCount(1, "sample")
	return c
}

func main() {}
