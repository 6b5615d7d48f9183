package player

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initSpeaker opens the output device once per process
func initSpeaker() error {
	speakerOnce.Do(func() {
		sr := beep.SampleRate(AudioSampleRate)
		speakerErr = speaker.Init(sr, sr.N(50*time.Millisecond))
	})
	return speakerErr
}

// sampleQueue holds interleaved s16le stereo samples between the decoder
// and the speaker goroutine.
type sampleQueue struct {
	mu     sync.Mutex
	buf    []byte
	played int // stereo samples handed to the device
}

const bytesPerSample = 4 // two little-endian int16 channels

func (q *sampleQueue) push(p []byte) {
	q.mu.Lock()
	q.buf = append(q.buf, p...)
	q.mu.Unlock()
}

// Stream implements beep.Streamer. An empty queue plays silence so the
// device keeps running until more audio is decoded.
func (q *sampleQueue) Stream(samples [][2]float64) (int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := min(len(samples), len(q.buf)/bytesPerSample)
	for i := 0; i < n; i++ {
		s := q.buf[i*bytesPerSample:]
		samples[i][0] = float64(int16(binary.LittleEndian.Uint16(s[0:]))) / 32768
		samples[i][1] = float64(int16(binary.LittleEndian.Uint16(s[2:]))) / 32768
	}
	clear(samples[n:])

	q.buf = q.buf[n*bytesPerSample:]
	q.played += n
	return len(samples), true
}

func (q *sampleQueue) Err() error {
	return nil
}

func (q *sampleQueue) stats() (played, queued int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.played, len(q.buf)
}

// SpeakerAudio decodes the file's own audio stream and plays it through the
// speaker. AVSource feeds it packets as they are demuxed.
type SpeakerAudio struct {
	mu       sync.Mutex
	ctx      *astiav.CodecContext
	resample *astiav.SoftwareResampleContext
	decoded  *astiav.Frame

	queue   sampleQueue
	playing bool
	closed  bool
}

// NewSpeakerAudio opens a decoder for the audio stream described by params
func NewSpeakerAudio(params *astiav.CodecParameters) (*SpeakerAudio, error) {
	if params == nil {
		return nil, errors.New("no audio stream")
	}

	ctx, err := openDecoder("audio", params)
	if err != nil {
		return nil, err
	}

	// the resampler configures itself from the first frame it converts
	resample := astiav.AllocSoftwareResampleContext()
	if resample == nil {
		ctx.Free()
		return nil, errors.New("could not allocate resampler")
	}

	a := &SpeakerAudio{
		ctx:      ctx,
		resample: resample,
		decoded:  astiav.AllocFrame(),
	}
	a.queue.buf = make([]byte, 0, AudioSampleRate*bytesPerSample)
	return a, nil
}

// Start opens the speaker and begins playback
func (a *SpeakerAudio) Start() error {
	if err := initSpeaker(); err != nil {
		return fmt.Errorf("could not open speaker: %w", err)
	}

	a.mu.Lock()
	a.playing = true
	a.mu.Unlock()

	speaker.Play(&a.queue)
	return nil
}

// DecodePacket decodes an audio packet and queues its samples.
// Frames the resampler rejects are dropped.
func (a *SpeakerAudio) DecodePacket(pkt *astiav.Packet) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrSourceClosed
	}
	if err := a.ctx.SendPacket(pkt); err != nil {
		return fmt.Errorf("audio decode: %w", err)
	}

	for {
		err := a.ctx.ReceiveFrame(a.decoded)
		if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("audio decode: %w", err)
		}
		a.convert()
		a.decoded.Unref()
	}
}

// convert resamples the decoded frame to s16 stereo at AudioSampleRate
func (a *SpeakerAudio) convert() {
	out := astiav.AllocFrame()
	defer out.Free()

	out.SetSampleFormat(astiav.SampleFormatS16)
	out.SetSampleRate(AudioSampleRate)
	out.SetChannelLayout(astiav.ChannelLayoutStereo)
	out.SetNbSamples(a.decoded.NbSamples())
	if err := out.AllocBuffer(0); err != nil {
		return
	}
	if err := a.resample.ConvertFrame(a.decoded, out); err != nil {
		return
	}

	size := out.NbSamples() * bytesPerSample
	if plane, err := out.Data().Bytes(0); err == nil && len(plane) >= size {
		a.queue.push(plane[:size])
	}
}

// Played returns how much audio has reached the device
func (a *SpeakerAudio) Played() time.Duration {
	n, _ := a.queue.stats()
	return time.Duration(n) * time.Second / AudioSampleRate
}

// Queued returns the number of bytes waiting for the device
func (a *SpeakerAudio) Queued() int {
	_, n := a.queue.stats()
	return n
}

// Stop silences the speaker and releases the decoder
func (a *SpeakerAudio) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	if a.playing {
		speaker.Clear()
		a.playing = false
	}
	a.decoded.Free()
	a.resample.Free()
	a.ctx.Free()
	a.decoded, a.resample, a.ctx = nil, nil, nil
	return nil
}
