//go:build darwin

package alert

import "os/exec"

func playCommands(path string) [][]string {
	return [][]string{{"afplay", path}}
}

func configureCmd(cmd *exec.Cmd) {}
