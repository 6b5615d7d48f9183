package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/asticode/go-astiav"
)

// avTimeBase is FFmpeg's AV_TIME_BASE, the unit of container durations
const avTimeBase = 1000000

// PacketKind tells which selected stream a packet belongs to
type PacketKind int

const (
	PacketOther PacketKind = iota
	PacketVideo
	PacketAudio
)

// Demuxer reads packets from a media file. Only the first video and the
// first audio stream are used.
type Demuxer struct {
	mu     sync.Mutex
	input  *astiav.FormatContext
	video  *astiav.Stream
	audio  *astiav.Stream // nil when the file is silent
	closed bool
}

// NewDemuxer opens path and probes its streams.
// Files without a video stream fail with ErrNoVideoStream.
func NewDemuxer(path string) (*Demuxer, error) {
	input := astiav.AllocFormatContext()
	if input == nil {
		return nil, fmt.Errorf("could not allocate format context")
	}
	if err := input.OpenInput(path, nil, nil); err != nil {
		input.Free()
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}

	d := &Demuxer{input: input}
	if err := input.FindStreamInfo(nil); err != nil {
		d.Close()
		return nil, fmt.Errorf("could not read stream info: %w", err)
	}

	for _, s := range input.Streams() {
		switch s.CodecParameters().MediaType() {
		case astiav.MediaTypeVideo:
			if d.video == nil {
				d.video = s
			}
		case astiav.MediaTypeAudio:
			if d.audio == nil {
				d.audio = s
			}
		}
	}
	if d.video == nil {
		d.Close()
		return nil, ErrNoVideoStream
	}
	return d, nil
}

// VideoCodecParameters describes the video stream
func (d *Demuxer) VideoCodecParameters() *astiav.CodecParameters {
	return d.video.CodecParameters()
}

// VideoTimeBase is the unit of video packet and frame timestamps
func (d *Demuxer) VideoTimeBase() astiav.Rational {
	return d.video.TimeBase()
}

// HasAudio reports whether the file carries an audio stream
func (d *Demuxer) HasAudio() bool {
	return d.audio != nil
}

// AudioCodecParameters describes the audio stream, nil when there is none
func (d *Demuxer) AudioCodecParameters() *astiav.CodecParameters {
	if d.audio == nil {
		return nil
	}
	return d.audio.CodecParameters()
}

// FrameRate returns the average frame rate, then the real base rate,
// then DefaultFPS when the container stores neither.
func (d *Demuxer) FrameRate() float64 {
	for _, r := range []astiav.Rational{d.video.AvgFrameRate(), d.video.RFrameRate()} {
		if r.Num() > 0 && r.Den() > 0 {
			return ratio(r)
		}
	}
	return DefaultFPS
}

// Duration is the video stream's length, or the container's when the
// stream does not say.
func (d *Demuxer) Duration() time.Duration {
	if n := d.video.Duration(); n > 0 {
		if dur := rationalToDuration(n, d.video.TimeBase()); dur > 0 {
			return dur
		}
	}
	if n := d.input.Duration(); n > 0 {
		return time.Duration(n) * time.Second / avTimeBase
	}
	return 0
}

// FrameCount is the stored frame count, or an estimate from duration and rate
func (d *Demuxer) FrameCount() int {
	if n := d.video.NbFrames(); n > 0 {
		return int(n)
	}
	return int(d.Duration().Seconds() * d.FrameRate())
}

// ReadPacket returns the next packet and the stream it belongs to.
// The caller frees the packet. astiav.ErrEof marks the end of the file.
func (d *Demuxer) ReadPacket() (*astiav.Packet, PacketKind, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, PacketOther, ErrSourceClosed
	}

	pkt := astiav.AllocPacket()
	if pkt == nil {
		return nil, PacketOther, fmt.Errorf("could not allocate packet")
	}
	if err := d.input.ReadFrame(pkt); err != nil {
		pkt.Free()
		return nil, PacketOther, err
	}

	switch idx := pkt.StreamIndex(); {
	case idx == d.video.Index():
		return pkt, PacketVideo, nil
	case d.audio != nil && idx == d.audio.Index():
		return pkt, PacketAudio, nil
	}
	return pkt, PacketOther, nil
}

// Close closes the file
func (d *Demuxer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	d.input.CloseInput()
	d.input.Free()
	d.input = nil
}

// rationalToDuration converts a timestamp in units of tb
func rationalToDuration(v int64, tb astiav.Rational) time.Duration {
	if tb.Den() == 0 {
		return 0
	}
	return time.Duration(float64(v) * ratio(tb) * float64(time.Second))
}

func ratio(r astiav.Rational) float64 {
	return float64(r.Num()) / float64(r.Den())
}
