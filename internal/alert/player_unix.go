//go:build !windows && !darwin

package alert

import "os/exec"

// PulseAudio/PipeWire first, then plain ALSA.
func playCommands(path string) [][]string {
	return [][]string{
		{"paplay", path},
		{"pw-play", path},
		{"aplay", "-q", path},
	}
}

func configureCmd(cmd *exec.Cmd) {}
