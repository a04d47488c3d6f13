//go:build voice

package audio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/gordonklaus/portaudio"
)

// Player plays synthesized speech on the default output device
type Player struct {
	cfg    Config
	logger logr.Logger
}

// NewPlayer creates a player
func NewPlayer(cfg Config, logger logr.Logger) *Player {
	return &Player{cfg: cfg, logger: logger.WithName("player")}
}

// Play plays a WAV stream until it ends or ctx is cancelled. Streams in
// other formats are handed to an external player.
func (p *Player) Play(ctx context.Context, r io.Reader) error {
	br := bufio.NewReader(r)
	head, err := br.Peek(12)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read audio stream: %w", err)
	}
	if len(head) < 12 || string(head[0:4]) != "RIFF" || string(head[8:12]) != "WAVE" {
		return p.playExternal(ctx, br)
	}

	format, samples, err := DecodeWAV(br)
	if err != nil {
		return err
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	frames := p.cfg.FramesPerBuffer
	if frames <= 0 {
		frames = 1024
	}
	out := make([]int16, frames*format.Channels)
	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), frames, out)
	if err != nil {
		return fmt.Errorf("failed to open playback stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}
	defer stream.Stop()

	p.logger.V(1).Info("Playing audio", "sampleRate", format.SampleRate, "channels", format.Channels)

	raw := make([]byte, len(out)*2)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, rerr := io.ReadFull(samples, raw)
		if n > 0 {
			got := bytesToInt16(out, raw[:n])
			clear(out[got:])
			if err := stream.Write(); err != nil && err != portaudio.OutputUnderflowed {
				return fmt.Errorf("failed to write audio: %w", err)
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("failed to read audio stream: %w", rerr)
		}
	}
}
