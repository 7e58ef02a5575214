package chord

import (
	"strings"
	"testing"

	"github.com/jsphweid/chordex/mask"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t *testing.T, quality string) table.Entry {
	t.Helper()
	e, ok := table.ByQuality(quality)
	require.True(t, ok, quality)
	return e
}

func TestAnalyzeExtensions(t *testing.T) {
	major := entry(t, "")
	minor := entry(t, "m")
	power := entry(t, "5")
	seventh := entry(t, "7")

	cases := []struct {
		name string
		e    table.Entry
		m    mask.Mask
		want []string
	}{
		{"exact", major, mask.FromPitchClasses(0, 4, 7), nil},
		{"add9", major, mask.FromPitchClasses(0, 2, 4, 7), []string{"add9"}},
		{"add11", major, mask.FromPitchClasses(0, 4, 5, 7), []string{"add11"}},
		{"add6", major, mask.FromPitchClasses(0, 4, 7, 9), []string{"add6"}},
		{"maj9", major, mask.FromPitchClasses(0, 2, 4, 7, 11), []string{"maj9", "addMaj7"}},
		{"ninth on a seventh", seventh, mask.FromPitchClasses(0, 2, 4, 7, 10), []string{"9"}},
		{"sus2", power, mask.FromPitchClasses(0, 2, 7), []string{"sus2"}},
		{"sus4", power, mask.FromPitchClasses(0, 5, 7), []string{"sus4"}},
		{"sus2sus4", power, mask.FromPitchClasses(0, 2, 5, 7), []string{"sus2sus4"}},
		{"sharp five", minor, mask.FromPitchClasses(0, 3, 7, 8), []string{"#5"}},
		{"flat nine", seventh, mask.FromPitchClasses(0, 1, 4, 7, 10), []string{"♭9"}},
		{"sharp nine", seventh, mask.FromPitchClasses(0, 3, 4, 7, 10), []string{"#9"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, AnalyzeExtensions(0, c.e, c.m))
		})
	}

	// rooted elsewhere: D major with an added E
	assert.Equal(t, []string{"add9"}, AnalyzeExtensions(2, major, mask.FromPitchClasses(2, 4, 6, 9)))
}

func TestMergeKeepsFirstPositionAndHighestConfidence(t *testing.T) {
	res := merge(nil, []model.Candidate{{Name: "C", Confidence: 1}, {Name: "G/B", Confidence: 2}})
	res = merge(res, []model.Candidate{{Name: "G/B", Confidence: 32}, {Name: "Em", Confidence: 0.5}, {Name: "C", Confidence: 0.1}})

	require.Len(t, res, 3)
	assert := assert.New(t)
	assert.Equal("C", res[0].Name)
	assert.Equal(1.0, res[0].Confidence)
	assert.Equal("G/B", res[1].Name)
	assert.Equal(32.0, res[1].Confidence)
	assert.Equal("Em", res[2].Name)
}

func TestNormalizeSumsToTen(t *testing.T) {
	res := []model.Candidate{{Confidence: 304}, {Confidence: 25}, {Confidence: 2.97}, {Confidence: 0.1}}
	normalize(res)

	var sum float64
	for i, c := range res {
		sum += c.Confidence
		if i > 0 {
			assert.GreaterOrEqual(t, res[i-1].Confidence, c.Confidence)
		}
	}
	assert.InDelta(t, 10.0, sum, 1e-9)

	one := []model.Candidate{{Confidence: 10000}}
	normalize(one)
	assert.InDelta(t, 10.0, one[0].Confidence, 1e-9)
}

func TestInversionDegree(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(1, inversionDegree(4))
	assert.Equal(2, inversionDegree(7))
	assert.Equal(3, inversionDegree(10))
	assert.Equal(0, inversionDegree(2))
}

func TestMatchScore(t *testing.T) {
	assert.Equal(t, 1.0, matchScore(mask.FromPitchClasses(0, 4, 7), mask.FromPitchClasses(0, 4, 7)))
	assert.InDelta(t, 0.75, matchScore(mask.FromPitchClasses(0, 4, 7, 10), mask.FromPitchClasses(0, 4, 7)), 1e-9)
	assert.Zero(t, matchScore(0, 0))
}

func TestQualityFactor(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(1.0, qualityFactor(entry(t, "").Flags))
	assert.Equal(seventhFactor, qualityFactor(entry(t, "maj7").Flags))
	assert.Equal(seventhFactor*minorSeventhFactor, qualityFactor(entry(t, "m7").Flags))
	assert.Equal(seventhFactor*minorSeventhFactor, qualityFactor(entry(t, "dim7").Flags))
}

func TestTemplateNamesUseFlatSign(t *testing.T) {
	for _, tpl := range extendedTemplates {
		assert.NotContains(t, tpl.name, "b", tpl.name)
	}
	for _, e := range table.Entries() {
		assert.False(t, strings.ContainsRune(e.Quality, 'b'), e.Quality)
	}
}
