package roots

import (
	"testing"

	"github.com/jsphweid/chordex/mask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRootPrefersBass(t *testing.T) {
	cOverE := mask.FromPitchClasses(0, 4, 7)
	assert.Equal(t, 4, EstimateRoot(cOverE, 4))
}

func TestEstimateRootFallsBackToTriad(t *testing.T) {
	// bass not sounding: first pitch class with a third and fifth wins
	m := mask.FromPitchClasses(2, 6, 9)
	assert.Equal(t, 2, EstimateRoot(m, -1))
	assert.Equal(t, 2, EstimateRoot(m, 0))
}

func TestEstimateRootFrequencyOrder(t *testing.T) {
	assert := assert.New(t)
	// no triad anywhere: G comes before D in the frequency list
	assert.Equal(7, EstimateRoot(mask.FromPitchClasses(2, 7), -1))
	assert.Equal(1, EstimateRoot(mask.FromPitchClasses(1, 3), -1))
	assert.Equal(-1, EstimateRoot(0, -1))
}

func TestAllCandidatesScores(t *testing.T) {
	c := mask.FromPitchClasses(0, 4, 7)
	got := AllCandidates(c, 0)
	require.Len(t, got, 3)

	assert := assert.New(t)
	assert.Equal(0, got[0].Root)
	assert.InDelta(1.0, got[0].Confidence, 1e-9)
	assert.Equal([]string{"bass", "third+fifth", "common"}, got[0].Reasons)

	// E: a minor third above (G) but no fifth, plus the E common bonus
	assert.InDelta((3.0+0.5)/21.0, Confidence(got, 4), 1e-9)
	// G: no third or fifth above, common bonus only
	assert.InDelta(2.5/21.0, Confidence(got, 7), 1e-9)
	assert.Zero(Confidence(got, 2))
}

func TestAllCandidatesDescending(t *testing.T) {
	got := AllCandidates(mask.FromPitchClasses(11, 2, 5, 9), 11)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Confidence, got[i].Confidence)
	}
	assert.Equal(t, 11, got[0].Root)
}
