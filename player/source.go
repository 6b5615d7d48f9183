package player

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/asticode/go-astiav"
	"github.com/njyeung/termvid/logs"
)

// PacketSink receives the audio packets met while reading video
type PacketSink interface {
	DecodePacket(pkt *astiav.Packet) error
}

// AVSource reads frames through FFmpeg
type AVSource struct {
	demuxer *Demuxer
	video   *VideoDecoder
	info    SourceInfo

	audio    PacketSink
	draining bool
}

// OpenSource opens path with the decoder that suits it:
// animated GIFs are decoded in Go, everything else goes through FFmpeg.
func OpenSource(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		return OpenGif(path)
	}
	return OpenAVSource(path)
}

// OpenAVSource opens a media file through FFmpeg
func OpenAVSource(path string) (*AVSource, error) {
	demuxer, err := NewDemuxer(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open media: %w", err)
	}

	fps := demuxer.FrameRate()
	video, err := NewVideoDecoder(demuxer.VideoCodecParameters(), demuxer.VideoTimeBase(), fps)
	if err != nil {
		demuxer.Close()
		return nil, fmt.Errorf("failed to create video decoder: %w", err)
	}

	w, h := video.SourceSize()
	return &AVSource{
		demuxer: demuxer,
		video:   video,
		info: SourceInfo{
			Width:      w,
			Height:     h,
			FPS:        fps,
			FrameCount: demuxer.FrameCount(),
			Duration:   demuxer.Duration(),
		},
	}, nil
}

// Info returns the probed stream properties
func (s *AVSource) Info() SourceInfo {
	return s.info
}

// Demuxer exposes the underlying demuxer, used to set up in-process audio
func (s *AVSource) Demuxer() *Demuxer {
	return s.demuxer
}

// AttachAudio routes audio packets to sink while frames are read
func (s *AVSource) AttachAudio(sink PacketSink) {
	s.audio = sink
}

// SetSize makes the scaler produce frames of the given size
func (s *AVSource) SetSize(width, height int) error {
	if s.video == nil {
		return ErrSourceClosed
	}
	return s.video.SetSize(width, height)
}

// Next decodes packets until a video frame comes out
func (s *AVSource) Next() (*Frame, error) {
	if s.video == nil {
		return nil, ErrSourceClosed
	}
	for {
		frame, err := s.video.ReceiveFrame()
		if err != nil {
			if errors.Is(err, astiav.ErrEof) {
				return nil, io.EOF
			}
			return nil, err
		}
		if frame != nil {
			return frame, nil
		}
		if s.draining {
			// a drained decoder that asks for input has nothing left
			return nil, io.EOF
		}

		pkt, kind, err := s.demuxer.ReadPacket()
		if err != nil {
			if errors.Is(err, astiav.ErrEof) {
				s.draining = true
				if err := s.video.SendPacket(nil); err != nil {
					return nil, err
				}
				continue
			}
			return nil, fmt.Errorf("could not read packet: %w", err)
		}

		switch {
		case kind == PacketVideo:
			err = s.video.SendPacket(pkt)
		case kind == PacketAudio && s.audio != nil:
			// audio trouble should not stop the picture
			if aerr := s.audio.DecodePacket(pkt); aerr != nil {
				logs.LogV("audio packet: %v", aerr)
			}
		}
		pkt.Free()
		if err != nil {
			return nil, err
		}
	}
}

// Close releases the decoder and the demuxer
func (s *AVSource) Close() {
	if s.video != nil {
		s.video.Close()
		s.video = nil
	}
	if s.demuxer != nil {
		s.demuxer.Close()
		s.demuxer = nil
	}
}

// Probe opens path only long enough to read its stream information
func Probe(path string) (SourceInfo, error) {
	src, err := OpenSource(path)
	if err != nil {
		return SourceInfo{}, err
	}
	defer src.Close()
	return src.Info(), nil
}
