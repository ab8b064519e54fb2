package logging

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"testing"
)

func TestLogger_BasicOperations(t *testing.T) {
	// Create a fresh logger for testing
	logger := &Logger{
		entries:  make([]Entry, 100),
		maxSize:  100,
		minLevel: LevelDebug,
	}

	// Test adding entries
	logger.Info(CatSystem, "Test message", map[string]any{"key": "value"})
	logger.Debug(CatBadge, "Debug message", nil)
	logger.Warn(CatBridge, "Warning message", nil)
	logger.Error(CatAlert, "Error message", nil)

	entries := logger.GetEntries(0, nil, nil)
	if len(entries) != 4 {
		t.Errorf("Expected 4 entries, got %d", len(entries))
	}

	// Verify order (newest first)
	if entries[0].Level != LevelError {
		t.Errorf("Expected newest entry to be ERROR, got %s", entries[0].Level)
	}
}

func TestLogger_RingBuffer(t *testing.T) {
	logger := &Logger{
		entries:  make([]Entry, 5),
		maxSize:  5,
		minLevel: LevelDebug,
	}

	// Add more entries than buffer size
	for i := 0; i < 10; i++ {
		logger.Info(CatSystem, fmt.Sprintf("Message %d", i), nil)
	}

	entries := logger.GetEntries(0, nil, nil)
	if len(entries) != 5 {
		t.Errorf("Expected 5 entries (ring buffer), got %d", len(entries))
	}

	// Verify oldest entries were overwritten
	if entries[0].Message != "Message 9" {
		t.Errorf("Expected newest message to be 'Message 9', got '%s'", entries[0].Message)
	}
}

func TestLogger_MinLevelFilter(t *testing.T) {
	logger := &Logger{
		entries:  make([]Entry, 100),
		maxSize:  100,
		minLevel: LevelWarn, // Only warn and error
	}

	logger.Debug(CatSystem, "Debug", nil)
	logger.Info(CatSystem, "Info", nil)
	logger.Warn(CatSystem, "Warn", nil)
	logger.Error(CatSystem, "Error", nil)

	entries := logger.GetEntries(0, nil, nil)
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries (warn and error only), got %d", len(entries))
	}
}

func TestLogger_GetEntriesWithFilters(t *testing.T) {
	logger := &Logger{
		entries:  make([]Entry, 100),
		maxSize:  100,
		minLevel: LevelDebug,
	}

	logger.Info(CatBridge, "Bridge message", nil)
	logger.Warn(CatBridge, "Bridge warning", nil)
	logger.Info(CatBadge, "Badge message", nil)
	logger.Error(CatBadge, "Badge error", nil)

	// Filter by level
	warnLevel := LevelWarn
	entries := logger.GetEntries(0, &warnLevel, nil)
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries with warn+ level, got %d", len(entries))
	}

	// Filter by category
	bridgeCat := CatBridge
	entries = logger.GetEntries(0, nil, &bridgeCat)
	if len(entries) != 2 {
		t.Errorf("Expected 2 bridge entries, got %d", len(entries))
	}

	// Filter by both
	entries = logger.GetEntries(0, &warnLevel, &bridgeCat)
	if len(entries) != 1 {
		t.Errorf("Expected 1 bridge warn+ entry, got %d", len(entries))
	}
}

func TestLogger_Limit(t *testing.T) {
	logger := &Logger{
		entries:  make([]Entry, 100),
		maxSize:  100,
		minLevel: LevelDebug,
	}

	for i := 0; i < 50; i++ {
		logger.Info(CatSystem, "Message", nil)
	}

	entries := logger.GetEntries(10, nil, nil)
	if len(entries) != 10 {
		t.Errorf("Expected 10 entries with limit, got %d", len(entries))
	}
}

func TestLogger_Clear(t *testing.T) {
	logger := &Logger{
		entries:  make([]Entry, 100),
		maxSize:  100,
		minLevel: LevelDebug,
	}

	logger.Info(CatSystem, "Message", nil)
	logger.Clear()

	entries := logger.GetEntries(0, nil, nil)
	if len(entries) != 0 {
		t.Errorf("Expected 0 entries after clear, got %d", len(entries))
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level.String() = %s, want %s", got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   Level
		wantOK bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{" warn ", LevelWarn, true},
		{"warning", LevelWarn, true},
		{"Error", LevelError, true},
		{"fatal", LevelDebug, false},
		{"", LevelDebug, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLevel(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLogger_Echo(t *testing.T) {
	var buf bytes.Buffer
	origOut := log.Writer()
	origFlags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(origOut)
		log.SetFlags(origFlags)
	}()

	logger := &Logger{
		entries:  make([]Entry, 10),
		maxSize:  10,
		minLevel: LevelInfo,
	}

	logger.Info(CatAlert, "silent", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output with echo disabled, got %q", buf.String())
	}

	logger.SetEcho(true)
	logger.Warn(CatAlert, "Sound playback failed", map[string]any{"path": "/tmp/a.wav", "code": 1})
	logger.Debug(CatAlert, "below min level", nil)

	got := buf.String()
	want := "WARN  [alert] Sound playback failed code=1 path=/tmp/a.wav\n"
	if got != want {
		t.Errorf("echo output = %q, want %q", got, want)
	}
	if strings.Contains(got, "below min level") {
		t.Error("entries below the minimum level must not be echoed")
	}
}
