// Package assets bundles the idle tray icon and the alert sound.
package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// SoundFileName is the alert clip's file name in every location.
const SoundFileName = "alert.wav"

// Icon is the idle tray icon (PNG, 64x64).
//
//go:embed icon.png
var Icon []byte

// Sound is the bundled alert clip (WAV).
//
//go:embed alert.wav
var Sound []byte

// PackagedSoundPath is where installers place the clip, next to the binary.
func PackagedSoundPath(exeDir string) string {
	return filepath.Join(exeDir, "resources", SoundFileName)
}

// DevSoundPath is the clip's location in a source checkout.
func DevSoundPath(workDir string) string {
	return filepath.Join(workDir, "internal", "assets", SoundFileName)
}

// ResolveSound returns the path of the alert clip to play. The packaged
// location wins over the development tree. When neither exists the
// embedded clip is written to cacheDir.
func ResolveSound(exeDir, workDir, cacheDir string) (string, error) {
	for _, p := range []string{PackagedSoundPath(exeDir), DevSoundPath(workDir)} {
		if fileExists(p) {
			return p, nil
		}
	}
	return extractSound(cacheDir)
}

// DefaultSoundPath resolves the clip relative to the running executable,
// the working directory and the user cache dir.
func DefaultSoundPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		cache = os.TempDir()
	}
	return ResolveSound(filepath.Dir(exe), wd, filepath.Join(cache, "messenger-tray"))
}

func extractSound(dir string) (string, error) {
	path := filepath.Join(dir, SoundFileName)
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, Sound) {
		return path, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(path, Sound, 0o644); err != nil {
		return "", fmt.Errorf("failed to extract alert sound: %w", err)
	}
	return path, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
