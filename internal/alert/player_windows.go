//go:build windows

package alert

import (
	"os/exec"
	"strings"
	"syscall"
)

func playCommands(path string) [][]string {
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	return [][]string{{
		"powershell",
		"-WindowStyle", "Hidden", "-NoProfile", "-NonInteractive", "-c",
		"(New-Object Media.SoundPlayer " + quoted + ").PlaySync();",
	}}
}

func configureCmd(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
