package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// externalPlayer is a command line player that accepts a file path as its last argument
type externalPlayer struct {
	Name string
	Args []string
}

var externalPlayers = []externalPlayer{
	{Name: "aplay", Args: []string{"-q"}},
	{Name: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	{Name: "mpg123", Args: []string{"-q"}},
}

// playExternal writes the stream to a temporary file and plays it with the
// first external player that succeeds
func (p *Player) playExternal(ctx context.Context, r io.Reader) error {
	tmp, err := os.CreateTemp("", "watsonassist-*.wav")
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	for _, player := range externalPlayers {
		path, err := exec.LookPath(player.Name)
		if err != nil {
			continue
		}
		args := append(append([]string{}, player.Args...), tmp.Name())
		cmd := exec.CommandContext(ctx, path, args...)
		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.V(1).Info("External player failed", "player", player.Name, "error", err.Error())
			continue
		}
		p.logger.V(1).Info("Played audio", "player", player.Name)
		return nil
	}
	return fmt.Errorf("no suitable audio player found")
}
