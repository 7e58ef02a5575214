package detector

import (
	"errors"
	"fmt"

	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/key"
	"github.com/jsphweid/chordex/logging"
	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/velocity"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoteOutOfRange     = errors.New("note must be 0-127")
	ErrVelocityOutOfRange = errors.New("velocity must be 0-127")
)

// Detector tracks which notes are down and names the chord they make.
// It is not safe for concurrent use; give each input stream its own
// Detector or serialize access to it.
type Detector struct {
	notes      [constants.NumMidiNotes]bool
	velocities [constants.NumMidiNotes]uint8

	key        key.Context
	classifier *velocity.Classifier
	slash      bool
	symmetric  bool

	log *logrus.Entry
}

type Option func(*Detector)

func WithLogger(log *logrus.Entry) Option {
	return func(d *Detector) {
		d.log = log
	}
}

func WithSymmetricLane(on bool) Option {
	return func(d *Detector) {
		d.symmetric = on
	}
}

// New fails when the velocity configuration is invalid.
func New(cfg velocity.Config, opts ...Option) (*Detector, error) {
	classifier, err := velocity.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("detector: %w", err)
	}
	d := &Detector{
		key:        key.None(),
		classifier: classifier,
		slash:      true,
		symmetric:  true,
		log:        logging.For("detector"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Default builds a Detector with the default velocity configuration.
func Default(opts ...Option) *Detector {
	d, err := New(velocity.DefaultConfig(), opts...)
	if err != nil {
		panic(err)
	}
	return d
}

func checkNote(note int) error {
	if note < 0 || note >= constants.NumMidiNotes {
		return fmt.Errorf("%w: %d", ErrNoteOutOfRange, note)
	}
	return nil
}

// NoteOn presses a note. A velocity of zero releases it, as on the wire.
func (d *Detector) NoteOn(note, velocity int) error {
	if err := checkNote(note); err != nil {
		return err
	}
	if velocity < 0 || velocity > 127 {
		return fmt.Errorf("%w: %d", ErrVelocityOutOfRange, velocity)
	}
	if velocity == 0 {
		return d.NoteOff(note)
	}
	if d.notes[note] {
		d.log.Warnf("note double pressed: %d", note)
	}
	d.notes[note] = true
	d.velocities[note] = uint8(velocity)
	return nil
}

func (d *Detector) NoteOff(note int) error {
	if err := checkNote(note); err != nil {
		return err
	}
	if !d.notes[note] {
		d.log.Warnf("note off for unpressed note: %d", note)
	}
	d.notes[note] = false
	d.velocities[note] = 0
	return nil
}

func (d *Detector) Reset() {
	d.notes = [constants.NumMidiNotes]bool{}
	d.velocities = [constants.NumMidiNotes]uint8{}
}

func (d *Detector) SetKeyContext(tonic int, minor bool) error {
	k, err := key.New(tonic, minor)
	if err != nil {
		return err
	}
	d.key = k
	return nil
}

func (d *Detector) SetKey(k key.Context) {
	d.key = k
}

func (d *Detector) ClearKeyContext() {
	d.key = key.None()
}

func (d *Detector) Key() key.Context {
	return d.key
}

func (d *Detector) SetVelocitySensitive(on bool) {
	cfg := d.classifier.Config()
	cfg.VelocitySensitive = on
	// only a flag changed, so the config stays valid
	d.classifier, _ = velocity.New(cfg)
}

func (d *Detector) SetSlashChordDetection(on bool) {
	d.slash = on
}

// ActiveNotes lists the pressed notes in ascending order.
func (d *Detector) ActiveNotes() model.Notes {
	var res model.Notes
	for note, on := range d.notes {
		if on {
			res = append(res, uint8(note))
		}
	}
	return res
}

// CurrentMask is the set of pitch classes of every pressed note.
func (d *Detector) CurrentMask() mask.Mask {
	return mask.FromNotes(d.ActiveNotes())
}

// Bass is the pitch class of the lowest pressed note, -1 when none is.
func (d *Detector) Bass() int {
	for note, on := range d.notes {
		if on {
			return note % 12
		}
	}
	return -1
}

func (d *Detector) Weights() velocity.Weights {
	return d.classifier.Classify(&d.notes, &d.velocities)
}

// Input snapshots the note state for the engine. With velocity sensitivity
// on, loud melody notes are left out as long as at least a triad including
// the bass remains.
func (d *Detector) Input(detailed bool) chord.Input {
	weights := d.Weights()
	bass := d.Bass()
	m := d.CurrentMask()
	if d.classifier.Config().VelocitySensitive {
		harmonic := weights.HarmonicMask
		if harmonic.Count() >= 3 && (bass < 0 || harmonic.Has(bass)) {
			m = harmonic
		}
	}
	return chord.Input{
		Mask:           m,
		Bass:           bass,
		Key:            d.key,
		Weights:        &weights,
		SlashDetection: d.slash,
		SymmetricLane:  d.symmetric,
		Detailed:       detailed,
	}
}

func (d *Detector) detect(detailed bool) []model.Candidate {
	in := d.Input(detailed)
	res := chord.Generate(in)
	if d.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		fields := logrus.Fields{
			"mask":       in.Mask.String(),
			"bass":       in.Bass,
			"key":        in.Key.String(),
			"candidates": len(res),
		}
		if len(res) > 0 {
			fields["best"] = res[0].Name
		}
		d.log.WithFields(fields).Debug("detected")
	}
	return res
}

// DetectBest returns the top candidate; ok is false when nothing was
// recognized.
func (d *Detector) DetectBest() (model.Candidate, bool) {
	res := d.detect(false)
	if len(res) == 0 {
		return model.Candidate{}, false
	}
	return res[0], true
}

// DetectAlternatives returns up to maxCount candidates, best first, with
// confidences summing to 10.
func (d *Detector) DetectAlternatives(maxCount int) []model.Candidate {
	return chord.Truncate(d.detect(false), maxCount)
}

// DetectDetailed is DetectAlternatives plus the ambiguous-equivalence
// reading.
func (d *Detector) DetectDetailed(maxCount int) []model.Candidate {
	return chord.Truncate(d.detect(true), maxCount)
}

// Clone returns an independent copy of the note state and settings.
func (d *Detector) Clone() *Detector {
	c := *d
	return &c
}
