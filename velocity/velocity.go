package velocity

import (
	"errors"
	"fmt"

	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/mask"
)

var (
	ErrInvalidThresholds = errors.New("melody threshold must be above pad threshold")
	ErrInvalidBoost      = errors.New("boost factors must be at least 1")
)

type Role int

const (
	Bass Role = iota
	Melody
	Harmony
	Mixed
)

func (r Role) String() string {
	switch r {
	case Bass:
		return "bass"
	case Melody:
		return "melody"
	case Harmony:
		return "harmony"
	case Mixed:
		return "mixed"
	default:
		return "unknown"
	}
}

type Config struct {
	VelocitySensitive    bool
	HarmonyFilterEnabled bool
	BassWeightEnabled    bool
	MelodyThreshold      uint8
	PadThreshold         uint8
	BassBoostFactor      float64
	HarmonyBoostFactor   float64
}

func DefaultConfig() Config {
	return Config{
		VelocitySensitive:    true,
		HarmonyFilterEnabled: true,
		BassWeightEnabled:    true,
		MelodyThreshold:      constants.DefaultMelodyThreshold,
		PadThreshold:         constants.DefaultPadThreshold,
		BassBoostFactor:      constants.DefaultBassBoostFactor,
		HarmonyBoostFactor:   constants.DefaultHarmonyBoostFactor,
	}
}

func (c Config) Validate() error {
	if c.MelodyThreshold <= c.PadThreshold {
		return fmt.Errorf("%w: melody=%d pad=%d", ErrInvalidThresholds, c.MelodyThreshold, c.PadThreshold)
	}
	if c.BassBoostFactor < 1 || c.HarmonyBoostFactor < 1 {
		return fmt.Errorf("%w: bass=%.2f harmony=%.2f", ErrInvalidBoost, c.BassBoostFactor, c.HarmonyBoostFactor)
	}
	return nil
}

// Weights is the per-call harmonic picture of the sounding notes.
type Weights struct {
	HarmonicMask        mask.Mask
	MelodicMask         mask.Mask
	Weights             [12]float64
	TotalHarmonicWeight float64
	TotalMelodicWeight  float64
}

// Coverage is the share of normalized harmonic weight that falls on m.
func (w *Weights) Coverage(m mask.Mask) float64 {
	var total float64
	for _, pc := range (m & w.HarmonicMask).PitchClasses() {
		total += w.Weights[pc]
	}
	return total
}

type Classifier struct {
	cfg Config
}

func New(cfg Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{cfg: cfg}, nil
}

func (c *Classifier) Config() Config {
	return c.cfg
}

// RoleOf places a sounding note: anything below C3 is bass, otherwise the
// velocity decides between melody, harmony (pad) and mixed.
func (c *Classifier) RoleOf(note, velocity uint8) Role {
	switch {
	case note < constants.BassNoteCeiling:
		return Bass
	case velocity >= c.cfg.MelodyThreshold:
		return Melody
	case velocity <= c.cfg.PadThreshold:
		return Harmony
	default:
		return Mixed
	}
}

func (c *Classifier) Classify(notes *[constants.NumMidiNotes]bool, velocities *[constants.NumMidiNotes]uint8) Weights {
	var w Weights
	var raw [12]float64

	for note := 0; note < constants.NumMidiNotes; note++ {
		if !notes[note] {
			continue
		}
		pc := note % 12

		if !c.cfg.VelocitySensitive {
			raw[pc] += 1.0
			w.HarmonicMask = w.HarmonicMask.Add(pc)
			continue
		}

		vel := velocities[note]
		weight := float64(vel) / 127.0
		role := c.RoleOf(uint8(note), vel)

		var contribution float64
		switch role {
		case Bass:
			contribution = weight
			if c.cfg.BassWeightEnabled {
				contribution *= c.cfg.BassBoostFactor
			}
		case Harmony:
			contribution = weight * c.cfg.HarmonyBoostFactor
		case Mixed:
			if c.cfg.HarmonyFilterEnabled {
				contribution = weight * 0.7
			} else {
				contribution = weight
			}
		case Melody:
			w.MelodicMask = w.MelodicMask.Add(pc)
			w.TotalMelodicWeight += weight
			if !c.cfg.HarmonyFilterEnabled {
				contribution = weight * 0.3
			}
		}

		if contribution > 0 {
			raw[pc] += contribution
			w.HarmonicMask = w.HarmonicMask.Add(pc)
		}
	}

	for _, v := range raw {
		w.TotalHarmonicWeight += v
	}
	if w.TotalHarmonicWeight > 0 {
		for pc := range raw {
			w.Weights[pc] = raw[pc] / w.TotalHarmonicWeight
		}
	}
	return w
}
