package chord

import (
	"strings"

	"github.com/jsphweid/chordex/key"
	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/table"
)

type diatonicRole struct {
	step   int
	weight float64
}

var diatonicRoles = []diatonicRole{
	{0, 1.3}, // tonic
	{3, 1.1}, // subdominant
	{4, 1.2}, // dominant
	{5, 1.0}, // submediant
}

// labels for notes beyond the triad and seventh, by interval above the root
var diatonicExtensions = map[int]string{
	2: "add9",
	5: "add11",
	9: "add6",
	8: "add♭6",
}

func hasCompleteTriad(m mask.Mask) bool {
	for _, root := range m.PitchClasses() {
		if (m.Has(root+3) || m.Has(root+4)) && m.Has(root+7) {
			return true
		}
	}
	return false
}

// diatonicLabel spells the chord built on root from the key's own third and
// fifth plus whatever else is sounding. ok is false when a note cannot be
// named.
func diatonicLabel(m mask.Mask, root, third, fifth int) (name string, flags model.Quality, parens int, ok bool) {
	var quality string
	switch mask.PitchClass(third - root) {
	case 3:
		flags = model.Minor
		quality = "m"
		if mask.PitchClass(fifth-root) == 6 {
			flags |= model.Diminished
			quality = "dim"
		}
	default:
		flags = model.Major
	}

	rel := (m &^ mask.FromPitchClasses(root, third, fifth)).Rotate(root)
	if rel.Has(10) && rel.Has(11) {
		return "", 0, 0, false
	}
	switch {
	case rel.Has(10):
		flags |= model.Seventh
		switch quality {
		case "m":
			flags |= model.MinorSeventh
			quality = "m7"
		case "dim":
			flags |= model.MinorSeventh
			quality = "m7♭5"
		default:
			flags |= model.Dominant
			quality = "7"
		}
	case rel.Has(11):
		flags |= model.Seventh
		switch quality {
		case "m":
			quality = "mMaj7"
		case "dim":
			return "", 0, 0, false
		default:
			quality = "maj7"
		}
	}
	rel = rel.Remove(10).Remove(11)

	var exts []string
	for _, interval := range rel.PitchClasses() {
		label, found := diatonicExtensions[interval]
		if !found {
			return "", 0, 0, false
		}
		exts = append(exts, label)
	}
	name = mask.NoteName(root) + quality
	if len(exts) > 0 {
		flags |= model.Extended
		name += "(" + strings.Join(exts, ",") + ")"
	}
	return name, flags, len(exts), true
}

func diatonicLane(s *state) []model.Candidate {
	k := s.in.Key
	if !k.IsSet() {
		return nil
	}
	anyComplete := hasCompleteTriad(s.in.Mask)

	var res []model.Candidate
	for _, role := range diatonicRoles {
		root := k.Degree(role.step)
		if !s.in.Mask.Has(root) {
			continue
		}
		third, fifth, _ := k.DiatonicTriad(root)
		hasThird, hasFifth := s.in.Mask.Has(third), s.in.Mask.Has(fifth)
		complete := hasThird && hasFifth
		if !complete && (anyComplete || !(hasThird || hasFifth)) {
			continue
		}
		name, flags, parens, ok := diatonicLabel(s.in.Mask, root, third, fifth)
		if !ok {
			continue
		}
		chord := mask.FromPitchClasses(root, third, fifth) | s.in.Mask
		extensions := (chord &^ mask.FromPitchClasses(root, third, fifth)).Count()

		r := reading{name: name, root: root, chord: chord, flags: flags}
		if s.bass >= 0 && s.bass != root {
			r.slashed = true
			r.name += "/" + mask.NoteName(s.bass)
		}
		boost := k.Boost(key.BoostInput{
			Root:     root,
			Quality:  flags,
			Mask:     s.in.Mask,
			Bass:     s.bass,
			Slash:    r.slashed,
			Extended: parens > 0,
		})
		conf := (1.2 + 0.1*float64(extensions)) * role.weight * boost
		res = append(res, s.candidate(r, conf, model.InterpretDiatonic))
	}
	return res
}

var rootlessQualities = []string{"7", "maj7", "m7", "9", "maj9", "m9", "m7♭5"}

func rootlessLane(s *state) []model.Candidate {
	k := s.in.Key
	if !k.IsSet() || s.in.Mask.Count() < 3 {
		return nil
	}
	var res []model.Candidate
	for _, step := range []int{0, 1, 3, 4, 5} {
		root := k.Degree(step)
		if s.in.Mask.Has(root) {
			continue
		}
		withRoot := s.in.Mask.Add(root)
		for _, quality := range rootlessQualities {
			e, ok := table.ByQuality(quality)
			if !ok || e.At(root) != withRoot {
				continue
			}
			conf := e.Confidence*0.8 + 0.15
			if step == 0 && !k.IsMinor() {
				conf += 0.2
			}
			if quality == "7" {
				conf += 0.25
			}
			r := entryReading(s, e, root, false)
			res = append(res, s.candidate(r, conf, model.InterpretRootless))
		}
	}
	return res
}

// polychordLane splits four or more pitch classes into a lower and an upper
// half and names each half on its own.
func polychordLane(s *state) []model.Candidate {
	k := s.in.Key
	if !k.IsSet() || s.in.Mask.Count() < 4 {
		return nil
	}
	pcs := s.in.Mask.PitchClasses()
	half := len(pcs) / 2
	lower, upper := mask.FromPitchClasses(pcs[:half]...), mask.FromPitchClasses(pcs[half:]...)

	lowerEntry, lowerRoot, ok := identify(lower)
	if !ok {
		return nil
	}
	upperEntry, upperRoot, ok := identify(upper)
	if !ok {
		return nil
	}
	r := reading{
		name:  upperEntry.Name(upperRoot) + "/" + lowerEntry.Name(lowerRoot),
		root:  upperRoot,
		chord: s.in.Mask,
		flags: upperEntry.Flags,
	}
	boost := k.Boost(key.BoostInput{Root: upperRoot, Quality: upperEntry.Flags, Mask: s.in.Mask, Bass: -1})
	conf := (lowerEntry.Confidence + upperEntry.Confidence) / 2 * 0.9 * boost
	return []model.Candidate{s.candidate(r, conf, model.InterpretPolychord)}
}
