package chord

import (
	"math"
	"sort"

	"github.com/jsphweid/chordex/key"
	"github.com/jsphweid/chordex/model"
	"gonum.org/v1/gonum/floats"
)

// merge appends the candidates whose names are new. A repeated name keeps
// its first position and the higher of the two confidences.
func merge(res, add []model.Candidate) []model.Candidate {
	for _, c := range add {
		found := false
		for i := range res {
			if res[i].Name == c.Name {
				res[i].Confidence = math.Max(res[i].Confidence, c.Confidence)
				found = true
				break
			}
		}
		if !found {
			res = append(res, c)
		}
	}
	return res
}

// function priorities, non-slash then slash
var functionPriority = map[key.Function][2]int{
	key.FunctionTonic:             {10, 5},
	key.FunctionDominant:          {9, 4},
	key.FunctionSubdominant:       {8, 3},
	key.FunctionSecondary:         {7, 2},
	key.FunctionSecondaryDominant: {6, 1},
	key.FunctionOther:             {1, 0},
}

func priority(k key.Context, c model.Candidate) int {
	p := functionPriority[k.Function(c.Root, c.Quality)]
	if c.IsSlash() {
		return p[1]
	}
	return p[0]
}

func byConfidence(res []model.Candidate) {
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Confidence > res[j].Confidence
	})
}

func rank(res []model.Candidate, k key.Context) {
	if !k.IsSet() {
		byConfidence(res)
		return
	}

	sort.SliceStable(res, func(i, j int) bool {
		pi, pj := priority(k, res[i]), priority(k, res[j])
		if pi != pj {
			return pi > pj
		}
		return res[i].Confidence > res[j].Confidence
	})

	for i := range res {
		c := &res[i]
		if c.IsSlash() {
			continue
		}
		seventh := c.Quality.Has(model.Seventh)
		switch k.Function(c.Root, c.Quality) {
		case key.FunctionTonic:
			c.Confidence *= 3
			if seventh {
				c.Confidence *= 1.5
			}
		case key.FunctionDominant:
			c.Confidence *= 2.5
			if seventh {
				c.Confidence *= 1.3
			}
		case key.FunctionSubdominant:
			c.Confidence *= 2
		}
	}
	byConfidence(res)
}

// normalize turns the confidences into a softmax distribution scaled to sum
// to 10.
func normalize(res []model.Candidate) {
	if len(res) == 0 {
		return
	}
	conf := make([]float64, len(res))
	for i, c := range res {
		conf[i] = c.Confidence
	}
	floats.AddConst(-floats.Max(conf), conf)
	for i := range conf {
		conf[i] = math.Exp(conf[i])
	}
	floats.Scale(10/floats.Sum(conf), conf)
	for i := range res {
		res[i].Confidence = conf[i]
	}
}

// Truncate keeps the first n candidates and rescales them to sum to 10
// again. n <= 0 keeps everything.
func Truncate(res []model.Candidate, n int) []model.Candidate {
	if n <= 0 || n >= len(res) {
		return res
	}
	res = res[:n]
	conf := make([]float64, n)
	for i, c := range res {
		conf[i] = c.Confidence
	}
	total := floats.Sum(conf)
	if total == 0 {
		return res
	}
	floats.Scale(10/total, conf)
	for i := range res {
		res[i].Confidence = conf[i]
	}
	return res
}
