package table

import (
	"fmt"
	"testing"

	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryPatternIsRootNormalized(t *testing.T) {
	for _, e := range Entries() {
		assert.True(t, e.Pattern.Has(0), "quality %q", e.Quality)
		assert.Greater(t, e.Confidence, 0.0)
	}
}

func TestFlagsDescribeIntervals(t *testing.T) {
	for _, e := range Entries() {
		t.Run(e.Name(0), func(t *testing.T) {
			p := e.Pattern
			hasSeventh := p.Has(10) || p.Has(11) || e.Quality == "dim7"
			assert.Equal(t, hasSeventh, e.Flags.Has(model.Seventh))
			assert.Equal(t, p.Has(4) && p.Has(10), e.Flags.Has(model.Dominant))
			minorSeventh := p.Has(3) && p.Has(10) && !p.Has(4)
			assert.Equal(t, minorSeventh || e.Quality == "dim7", e.Flags.Has(model.MinorSeventh))
		})
	}
}

func TestLookup(t *testing.T) {
	e, ok := Lookup(mask.FromPitchClasses(0, 4, 7))
	require.True(t, ok)
	assert.Equal(t, "", e.Quality)

	e, ok = Lookup(mask.FromPitchClasses(0, 3, 6, 10))
	require.True(t, ok)
	assert.Equal(t, "m7♭5", e.Quality)

	_, ok = Lookup(mask.FromPitchClasses(0, 1, 2))
	assert.False(t, ok)
	_, ok = Lookup(0)
	assert.False(t, ok)
}

func TestLookupAtRotatesToRoot(t *testing.T) {
	gOverB := mask.FromPitchClasses(7, 11, 2)

	e, ok := LookupAt(gOverB, 7)
	require.True(t, ok)
	assert.Equal(t, "G", e.Name(7))

	_, ok = LookupAt(gOverB, 11)
	assert.False(t, ok)

	// roots that are not sounding never match
	_, ok = LookupAt(mask.FromPitchClasses(4, 7), 0)
	assert.False(t, ok)
}

func TestLookupIsTranspositionInvariant(t *testing.T) {
	for _, e := range Entries() {
		for root := 0; root < 12; root++ {
			got, ok := LookupAt(e.At(root), root)
			require.True(t, ok, "%s", e.Name(root))
			assert.Equal(t, e.Quality, got.Quality)
		}
	}
}

func TestEquivalencesAreExactShapesForBothNames(t *testing.T) {
	eqs := Equivalences()
	require.Len(t, eqs, 7)
	for _, eq := range eqs {
		t.Run(eq.LabelA, func(t *testing.T) {
			assert.Equal(t, 4, eq.Mask.Count())
			a, ok := LookupAt(eq.Mask, eq.RootA)
			require.True(t, ok)
			b, ok := LookupAt(eq.Mask, eq.RootB)
			require.True(t, ok)
			assert.Equal(t, eq.LabelA, a.Name(eq.RootA))
			assert.Equal(t, eq.LabelB, b.Name(eq.RootB))
		})
	}
}

func TestResolveEquivalence(t *testing.T) {
	eq, ok := FindEquivalence(mask.FromPitchClasses(0, 4, 7, 9))
	require.True(t, ok)

	cases := []struct {
		bass int
		name string
		root int
	}{
		{0, "C6 (=Am7)", 0},
		{9, "Am7 (=C6)", 9},
		{4, "C6/E (=Am7/E)", 0},
		{-1, "C6 (=Am7)", 0},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.bass), func(t *testing.T) {
			name, root := eq.Resolve(c.bass)
			assert.Equal(t, c.name, name)
			assert.Equal(t, c.root, root)
		})
	}

	_, ok = FindEquivalence(mask.FromPitchClasses(0, 4, 7))
	assert.False(t, ok)
}
