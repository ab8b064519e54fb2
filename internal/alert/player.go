package alert

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoPlayer is returned when no audio tool is installed.
var ErrNoPlayer = errors.New("no audio player available")

// Player plays a sound file to completion.
type Player interface {
	Play(ctx context.Context, path string) error
}

// CommandPlayer plays sounds through the platform's audio tool. The first
// candidate found on PATH is used.
type CommandPlayer struct {
	lookPath func(string) (string, error)
}

// NewCommandPlayer returns a Player for the current platform.
func NewCommandPlayer() *CommandPlayer {
	return &CommandPlayer{lookPath: exec.LookPath}
}

func (p *CommandPlayer) Play(ctx context.Context, path string) error {
	for _, argv := range playCommands(path) {
		bin, err := p.lookPath(argv[0])
		if err != nil {
			continue
		}
		cmd := exec.CommandContext(ctx, bin, argv[1:]...)
		configureCmd(cmd)
		out, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("%s: %w: %s", argv[0], err, strings.TrimSpace(string(out)))
		}
		return nil
	}
	return ErrNoPlayer
}
