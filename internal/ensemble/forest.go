package ensemble

import (
	"math"
	"math/rand"
)

// RandomForest is a bagged ensemble of CART trees: each tree is grown on a
// bootstrap sample with sqrt(d) candidate features per split, predictions
// are decided by majority vote.
type RandomForest struct {
	NumTrees int
	MaxDepth int
	Seed     int64

	trees []*decisionTree
}

func NewRandomForest(numTrees, maxDepth int, seed int64) *RandomForest {
	return &RandomForest{NumTrees: numTrees, MaxDepth: maxDepth, Seed: seed}
}

func (f *RandomForest) Fit(X [][]float64, y []int) {
	if len(X) == 0 {
		return
	}
	rng := rand.New(rand.NewSource(f.Seed))
	maxFeatures := int(math.Sqrt(float64(len(X[0]))))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	f.trees = make([]*decisionTree, 0, f.NumTrees)
	for t := 0; t < f.NumTrees; t++ {
		bx := make([][]float64, len(X))
		by := make([]int, len(y))
		for i := range bx {
			j := rng.Intn(len(X))
			bx[i] = X[j]
			by[i] = y[j]
		}

		tree := newDecisionTree(f.MaxDepth, maxFeatures, rand.New(rand.NewSource(rng.Int63())))
		tree.fit(bx, by, nil)
		f.trees = append(f.trees, tree)
	}
}

func (f *RandomForest) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, x := range X {
		votes := make(map[int]int)
		for _, tree := range f.trees {
			votes[tree.predict(x)]++
		}
		out[i] = topVote(votes)
	}
	return out
}

// topVote returns the most voted class; ties resolve to the smallest class
// value for determinism.
func topVote(votes map[int]int) int {
	best, bestCount := 0, -1
	for class, count := range votes {
		if count > bestCount || (count == bestCount && class < best) {
			best, bestCount = class, count
		}
	}
	return best
}
