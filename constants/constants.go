package constants

import (
	"os"
	"strconv"
	"time"
)

func GetLogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		return level
	}
	return "info"
}

func GetListenAddr() string {
	addr := os.Getenv("CHORDEX_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// GetMediaDir is where `report` looks for midi files when no directory
// argument is given.
func GetMediaDir() string {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path
	}
	return "."
}

func GetMidiInPort() int {
	port, err := strconv.Atoi(os.Getenv("CHORDEX_MIDI_PORT"))
	if err != nil || port < 0 {
		return 0
	}
	return port
}

func GetDebounce() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("CHORDEX_DEBOUNCE_MS"))
	if err != nil || ms <= 0 {
		return DefaultDebounce
	}
	return time.Duration(ms) * time.Millisecond
}

const DefaultDebounce = 15 * time.Millisecond

// velocity classifier defaults
const (
	DefaultMelodyThreshold    uint8 = 100
	DefaultPadThreshold       uint8 = 60
	DefaultBassBoostFactor          = 1.5
	DefaultHarmonyBoostFactor       = 1.2
)

// BassNoteCeiling is the first MIDI note that is no longer treated as bass (C3).
const BassNoteCeiling = 48

const NumMidiNotes = 128

const DefaultMaxCandidates = 5
