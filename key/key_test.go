package key

import (
	"testing"

	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T, tonic int, minor bool) Context {
	t.Helper()
	k, err := New(tonic, minor)
	require.NoError(t, err)
	return k
}

func TestScales(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(mask.FromPitchClasses(0, 2, 4, 5, 7, 9, 11), mustKey(t, 0, false).Scale())
	assert.Equal(mask.FromPitchClasses(9, 11, 0, 2, 4, 5, 7), mustKey(t, 9, true).Scale())
	for tonic := 0; tonic < 12; tonic++ {
		assert.Equal(7, mustKey(t, tonic, false).Scale().Count())
		assert.Equal(7, mustKey(t, tonic, true).Scale().Count())
	}
}

func TestZeroValueIsNoKey(t *testing.T) {
	var k Context
	assert.False(t, k.IsSet())
	assert.Equal(t, -1, k.Tonic())
	assert.False(t, None().IsSet())
	assert.Equal(t, 1.0, k.Boost(BoostInput{Root: 0, Mask: mask.FromPitchClasses(0, 4, 7), Bass: -1}))
}

func TestNewRejectsBadTonic(t *testing.T) {
	_, err := New(12, false)
	assert.ErrorIs(t, err, ErrInvalidTonic)
	_, err = New(-1, true)
	assert.ErrorIs(t, err, ErrInvalidTonic)
}

func TestParse(t *testing.T) {
	cases := []struct {
		in    string
		tonic int
		minor bool
	}{
		{"C", 0, false},
		{"C major", 0, false},
		{"Cmaj", 0, false},
		{"A minor", 9, true},
		{"Am", 9, true},
		{"F#m", 6, true},
		{"Bb min", 10, true},
		{"Eb", 3, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			k, err := Parse(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.tonic, k.Tonic())
			assert.Equal(t, c.minor, k.IsMinor())
		})
	}

	k, err := Parse("none")
	require.NoError(t, err)
	assert.False(t, k.IsSet())

	_, err = Parse("H minor")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestString(t *testing.T) {
	assert.Equal(t, "A minor", mustKey(t, 9, true).String())
	assert.Equal(t, "F# major", mustKey(t, 6, false).String())
	assert.Equal(t, "none", None().String())
}

func TestRelevance(t *testing.T) {
	c := mustKey(t, 0, false)
	assert.Equal(t, 1.0, c.Relevance(mask.FromPitchClasses(0, 4, 7)))
	assert.InDelta(t, 2.0/3.0, c.Relevance(mask.FromPitchClasses(2, 6, 9)), 1e-9)
	assert.Zero(t, c.Relevance(0))
}

func TestDiatonicTriad(t *testing.T) {
	c := mustKey(t, 0, false)
	third, fifth, ok := c.DiatonicTriad(2)
	require.True(t, ok)
	assert.Equal(t, 5, third)
	assert.Equal(t, 9, fifth)

	am := mustKey(t, 9, true)
	third, fifth, ok = am.DiatonicTriad(4)
	require.True(t, ok)
	assert.Equal(t, 7, third)
	assert.Equal(t, 11, fifth)

	_, _, ok = c.DiatonicTriad(1)
	assert.False(t, ok)
}

func TestRoman(t *testing.T) {
	c := mustKey(t, 0, false)
	triad := model.Major
	dom7 := model.Major | model.Seventh | model.Dominant

	assert := assert.New(t)
	assert.Equal("I", c.Roman(0, triad))
	assert.Equal("V", c.Roman(7, dom7))
	assert.Equal("V7/V", c.Roman(2, dom7))
	assert.Equal("V7/vi", c.Roman(4, dom7))
	assert.Equal("V7/IV", c.Roman(0, dom7))
	// any seventh chord on those degrees reads as a secondary dominant
	assert.Equal("V7/IV", c.Roman(0, model.Major|model.Seventh))
	assert.Equal("V7/ii", c.Roman(9, model.Minor|model.Seventh|model.MinorSeventh))
	assert.Equal("V7/V", c.Roman(2, model.Minor|model.Seventh|model.MinorSeventh))
	assert.Equal("V7/iii", c.Roman(11, model.Minor|model.Seventh|model.MinorSeventh))
	assert.Equal("V7/vi", c.Roman(4, model.Seventh|model.Suspended))
	assert.Equal("vi", c.Roman(9, model.Minor))
	assert.Equal("vii°", c.Roman(11, model.Diminished))

	am := mustKey(t, 9, true)
	assert.Equal("i", am.Roman(9, model.Minor))
	assert.Equal("v", am.Roman(4, dom7))
	assert.Equal("III", am.Roman(0, triad))
	assert.Empty(None().Roman(0, triad))
}

func TestFunction(t *testing.T) {
	c := mustKey(t, 0, false)
	assert := assert.New(t)
	assert.Equal(FunctionTonic, c.Function(0, model.Major))
	assert.Equal(FunctionDominant, c.Function(7, model.Major|model.Seventh|model.Dominant))
	assert.Equal(FunctionSubdominant, c.Function(5, model.Major))
	assert.Equal(FunctionSecondary, c.Function(2, model.Minor))
	assert.Equal(FunctionSecondaryDominant, c.Function(2, model.Major|model.Seventh|model.Dominant))
	assert.Equal(FunctionOther, c.Function(1, model.Major))
	assert.Equal(FunctionSecondaryDominant, c.Function(0, model.Major|model.Seventh))
	assert.Equal(FunctionSecondaryDominant, c.Function(9, model.Minor|model.Seventh|model.MinorSeventh))
	// not in minor keys
	am := mustKey(t, 9, true)
	assert.Equal(FunctionTonic, am.Function(9, model.Minor|model.Seventh|model.MinorSeventh))
	assert.True(FunctionDominant.IsPrimary())
	assert.False(FunctionSecondary.IsPrimary())
}

func TestBoost(t *testing.T) {
	c := mustKey(t, 0, false)
	cMajor := mask.FromPitchClasses(0, 4, 7)

	assert := assert.New(t)
	// degree 1.0 + relevance 0.8 + tonic 1.2+2.0
	assert.InDelta(6.0, c.Boost(BoostInput{Root: 0, Quality: model.Major, Mask: cMajor, Bass: 0}), 1e-9)

	g7 := mask.FromPitchClasses(7, 11, 2, 5)
	assert.InDelta(7.2, c.Boost(BoostInput{Root: 7, Quality: model.Major | model.Seventh | model.Dominant, Mask: g7, Bass: 7}), 1e-9)

	t.Run("slash bass", func(t *testing.T) {
		assert.InDelta(6.0*2.2, c.Boost(BoostInput{Root: 0, Quality: model.Major, Mask: cMajor, Bass: 4, Slash: true}), 1e-9)
		assert.InDelta(6.0*2.5, c.Boost(BoostInput{Root: 0, Quality: model.Major, Mask: cMajor, Bass: 7, Slash: true}), 1e-9)
		assert.InDelta(6.0*2.5*1.3, c.Boost(BoostInput{Root: 0, Quality: model.Major, Mask: cMajor, Bass: 7, Slash: true, Extended: true}), 1e-9)
		assert.InDelta(6.0*0.7, c.Boost(BoostInput{Root: 0, Quality: model.Major, Mask: cMajor, Bass: 6, Slash: true}), 1e-9)
	})

	t.Run("A-C-E read as C", func(t *testing.T) {
		ace := mask.FromPitchClasses(9, 0, 4)
		assert.InDelta(0.28, c.Boost(BoostInput{Root: 0, Quality: model.Major | model.Sixth, Mask: ace, Bass: 9}), 1e-9)
		// the same notes rooted on A are a secondary function: 1.4 + 0.8 + 0.4
		assert.InDelta(2.6, c.Boost(BoostInput{Root: 9, Quality: model.Minor, Mask: ace, Bass: 9}), 1e-9)
	})

	t.Run("minor tonic", func(t *testing.T) {
		am := mustKey(t, 9, true)
		assert.InDelta(6.0, am.Boost(BoostInput{Root: 9, Quality: model.Minor, Mask: mask.FromPitchClasses(9, 0, 4), Bass: 9}), 1e-9)
	})
}

func TestEstimate(t *testing.T) {
	var w [12]float64
	w[0], w[4], w[7] = 2, 1, 1
	k, score := Estimate(w)
	assert.Equal(t, 0, k.Tonic())
	assert.False(t, k.IsMinor())
	assert.Greater(t, score, 0.5)

	w = [12]float64{}
	w[9], w[0], w[4] = 2, 1, 1
	k, _ = Estimate(w)
	assert.Equal(t, 9, k.Tonic())
	assert.True(t, k.IsMinor())

	k, score = Estimate([12]float64{})
	assert.False(t, k.IsSet())
	assert.Zero(t, score)
}
