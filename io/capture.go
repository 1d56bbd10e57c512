package io

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/gen2brain/malgo"

	"github.com/pfcm/shifty"
	"github.com/pfcm/shifty/fix"
)

// CaptureConfig selects how the default input device is opened.
type CaptureConfig struct {
	SampleRate uint32
	// Channels is the number of channels to capture, which has to match
	// the Ticker's inputs.
	Channels int
}

// DefaultCaptureConfig is mono at 44.1kHz.
var DefaultCaptureConfig = CaptureConfig{SampleRate: 44100, Channels: 1}

// CaptureWithDefaults uses the default input device to feed the provided
// Ticker, calling report with each block of its output. It blocks until the
// provided context is cancelled. report is called from the device's callback,
// so it should return quickly and not hold on to the block.
func CaptureWithDefaults(ctx context.Context, t shifty.Ticker, cfg CaptureConfig, report func([][]int16)) error {
	if cfg.Channels != t.Inputs() {
		return fmt.Errorf("%v wants %d inputs: capturing %d channels", t, t.Inputs(), cfg.Channels)
	}
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		fmt.Fprint(os.Stderr, msg)
	})
	if err != nil {
		return err
	}
	defer func() {
		mctx.Uninit()
		mctx.Free()
	}()
	dcfg := malgo.DefaultDeviceConfig(malgo.Capture)
	dcfg.Capture.Format = malgo.FormatF32
	dcfg.Capture.Channels = uint32(cfg.Channels)
	dcfg.SampleRate = cfg.SampleRate

	// TODO: do we know the sizes ahead of the first recv call?
	inputs := make([][]int16, cfg.Channels)
	for i := range inputs {
		inputs[i] = make([]int16, shifty.BlockSize)
	}
	outputs := make([][]int16, t.Outputs())
	for i := range outputs {
		outputs[i] = make([]int16, shifty.BlockSize)
	}

	recv := func(_, in []byte, framecount uint32) {
		if framecount == 0 {
			return
		}
		n := int(min(framecount, shifty.BlockSize))
		for i := range inputs {
			inputs[i] = inputs[i][:n]
		}
		for i := range outputs {
			outputs[i] = outputs[i][:n]
		}
		deinterleaveF32(in, inputs)
		t.Tick(inputs, outputs)
		report(outputs)
	}

	device, err := malgo.InitDevice(mctx.Context, dcfg, malgo.DeviceCallbacks{
		Data: recv,
	})
	if err != nil {
		return err
	}
	defer device.Uninit()
	if err := device.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

// deinterleaveF32 converts interleaved little-endian float32 frames into the
// channels of out, filling each up to its length or until in runs out.
func deinterleaveF32(in []byte, out [][]int16) int {
	frameSize := 4 * len(out)
	n := 0
	for i := 0; i+frameSize <= len(in) && n < len(out[0]); i += frameSize {
		for c := range out {
			u := binary.LittleEndian.Uint32(in[i+c*4:])
			out[c][n] = f32ToSample(math.Float32frombits(u))
		}
		n++
	}
	return n
}

// f32ToSample maps [-1, 1] onto the int16 range, clamping anything outside.
func f32ToSample(f float32) int16 {
	return fix.Sat16(int32(math.Round(float64(f) * 32768)))
}
