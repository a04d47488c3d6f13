//go:build !voice

package audio

import (
	"context"
	"io"

	"github.com/go-logr/logr"
)

// Player plays synthesized speech through an external command line player
type Player struct {
	cfg    Config
	logger logr.Logger
}

// NewPlayer creates a player
func NewPlayer(cfg Config, logger logr.Logger) *Player {
	return &Player{cfg: cfg, logger: logger.WithName("player")}
}

// Play plays the stream with the first available external player
func (p *Player) Play(ctx context.Context, r io.Reader) error {
	return p.playExternal(ctx, r)
}
