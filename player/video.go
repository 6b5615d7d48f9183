package player

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/asticode/go-astiav"
)

// noPTS is FFmpeg's AV_NOPTS_VALUE
const noPTS = math.MinInt64

// VideoDecoder turns video packets into RGB24 frames of a chosen size
type VideoDecoder struct {
	mu sync.Mutex

	ctx    *astiav.CodecContext
	scaler *astiav.SoftwareScaleContext
	raw    *astiav.Frame // decoder output
	rgb    *astiav.Frame // scaler output, reused between frames

	srcW, srcH int
	dstW, dstH int

	timeBase astiav.Rational
	fps      float64
	count    int // frames handed out, used when a frame carries no PTS

	closed bool
}

// NewVideoDecoder opens a decoder for the stream. Frames come out at
// the stream's own size until SetSize is called.
func NewVideoDecoder(params *astiav.CodecParameters, timeBase astiav.Rational, fps float64) (*VideoDecoder, error) {
	ctx, err := openDecoder("video", params)
	if err != nil {
		return nil, err
	}

	w, h := params.Width(), params.Height()
	return &VideoDecoder{
		ctx:      ctx,
		raw:      astiav.AllocFrame(),
		rgb:      astiav.AllocFrame(),
		srcW:     w,
		srcH:     h,
		dstW:     w,
		dstH:     h,
		timeBase: timeBase,
		fps:      fps,
	}, nil
}

// SetSize changes the output size, rebuilding the scaler
func (v *VideoDecoder) SetSize(width, height int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.scaler != nil && width == v.dstW && height == v.dstH {
		return nil
	}
	v.dstW, v.dstH = width, height
	v.freeScaler()
	return v.buildScaler()
}

// buildScaler uses area averaging so that each output pixel is the mean of
// the source pixels it covers.
func (v *VideoDecoder) buildScaler() error {
	if v.dstW <= 0 || v.dstH <= 0 {
		return fmt.Errorf("invalid output size %dx%d", v.dstW, v.dstH)
	}

	scaler, err := astiav.CreateSoftwareScaleContext(
		v.srcW, v.srcH, v.ctx.PixelFormat(),
		v.dstW, v.dstH, astiav.PixelFormatRgb24,
		astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagArea),
	)
	if err != nil {
		return fmt.Errorf("could not create scaler: %w", err)
	}

	v.rgb.Unref()
	v.rgb.SetWidth(v.dstW)
	v.rgb.SetHeight(v.dstH)
	v.rgb.SetPixelFormat(astiav.PixelFormatRgb24)
	if err := v.rgb.AllocBuffer(1); err != nil {
		scaler.Free()
		return fmt.Errorf("could not allocate rgb buffer: %w", err)
	}

	v.scaler = scaler
	return nil
}

func (v *VideoDecoder) freeScaler() {
	if v.scaler != nil {
		v.scaler.Free()
		v.scaler = nil
	}
}

// SendPacket feeds a packet to the decoder. A nil packet starts draining.
func (v *VideoDecoder) SendPacket(pkt *astiav.Packet) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrSourceClosed
	}

	err := v.ctx.SendPacket(pkt)
	switch {
	case err == nil, errors.Is(err, astiav.ErrEagain), errors.Is(err, astiav.ErrEof):
		return nil
	default:
		return fmt.Errorf("video decode: %w", err)
	}
}

// ReceiveFrame returns the next decoded frame.
// It returns nil, nil when the decoder needs more input and
// nil, astiav.ErrEof once a drained decoder is empty.
func (v *VideoDecoder) ReceiveFrame() (*Frame, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil, ErrSourceClosed
	}

	err := v.ctx.ReceiveFrame(v.raw)
	switch {
	case errors.Is(err, astiav.ErrEagain):
		return nil, nil
	case errors.Is(err, astiav.ErrEof):
		return nil, astiav.ErrEof
	case err != nil:
		return nil, fmt.Errorf("video decode: %w", err)
	}
	defer v.raw.Unref()

	out := &Frame{
		Width:  v.dstW,
		Height: v.dstH,
		PTS:    IdealTime(v.count, v.fps),
	}
	if p := v.raw.Pts(); p != noPTS {
		out.PTS = rationalToDuration(p, v.timeBase)
	}
	v.count++

	if out.RGB, err = v.scale(); err != nil {
		return nil, err
	}
	return out, nil
}

// scale converts the current raw frame and returns a private copy of its pixels
func (v *VideoDecoder) scale() ([]byte, error) {
	if v.scaler == nil {
		if err := v.buildScaler(); err != nil {
			return nil, err
		}
	}
	if err := v.scaler.ScaleFrame(v.raw, v.rgb); err != nil {
		return nil, fmt.Errorf("could not scale frame: %w", err)
	}

	pix, err := v.rgb.Data().Bytes(1)
	if err != nil {
		return nil, fmt.Errorf("could not read rgb frame: %w", err)
	}
	return append([]byte(nil), pix...), nil
}

// SourceSize returns the stream's own dimensions
func (v *VideoDecoder) SourceSize() (int, int) {
	return v.srcW, v.srcH
}

// Close releases the decoder, scaler and frames
func (v *VideoDecoder) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true

	v.freeScaler()
	for _, f := range []*astiav.Frame{v.raw, v.rgb} {
		f.Free()
	}
	v.raw, v.rgb = nil, nil
	v.ctx.Free()
	v.ctx = nil
}
