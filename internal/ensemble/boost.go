package ensemble

import (
	"math"
	"math/rand"
)

// BoostedTrees is a SAMME-style boosted ensemble of shallow CART trees:
// each stage reweights the sample toward rows the previous stages got
// wrong, and stages vote with weight log((1-err)/err) + log(K-1).
type BoostedTrees struct {
	Stages   int
	MaxDepth int
	Seed     int64

	trees    []*decisionTree
	alphas   []float64
	classes  []int
	fallback int
}

func NewBoostedTrees(stages, maxDepth int, seed int64) *BoostedTrees {
	return &BoostedTrees{Stages: stages, MaxDepth: maxDepth, Seed: seed}
}

func (b *BoostedTrees) Fit(X [][]float64, y []int) {
	if len(X) == 0 {
		return
	}
	b.classes = uniqueClasses(y)
	b.fallback = plainMajority(y)
	k := float64(len(b.classes))
	if k < 2 {
		return // single-class sample, nothing to boost
	}

	rng := rand.New(rand.NewSource(b.Seed))
	weights := make([]float64, len(y))
	for i := range weights {
		weights[i] = 1 / float64(len(y))
	}

	for stage := 0; stage < b.Stages; stage++ {
		tree := newDecisionTree(b.MaxDepth, 0, rand.New(rand.NewSource(rng.Int63())))
		tree.fit(X, y, weights)

		pred := tree.predictAll(X)
		var err float64
		for i := range y {
			if pred[i] != y[i] {
				err += weights[i]
			}
		}

		if err <= 0 {
			// perfect stage dominates the vote; nothing left to reweight
			b.trees = append(b.trees, tree)
			b.alphas = append(b.alphas, 10)
			break
		}
		if err >= 1-1/k {
			break // no better than random guessing
		}

		alpha := math.Log((1-err)/err) + math.Log(k-1)
		b.trees = append(b.trees, tree)
		b.alphas = append(b.alphas, alpha)

		var total float64
		for i := range weights {
			if pred[i] != y[i] {
				weights[i] *= math.Exp(alpha)
			}
			total += weights[i]
		}
		for i := range weights {
			weights[i] /= total
		}
	}
}

func (b *BoostedTrees) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, x := range X {
		out[i] = b.predictOne(x)
	}
	return out
}

func (b *BoostedTrees) predictOne(x []float64) int {
	if len(b.trees) == 0 {
		return b.fallback
	}
	scores := make(map[int]float64, len(b.classes))
	for s, tree := range b.trees {
		scores[tree.predict(x)] += b.alphas[s]
	}

	best, bestScore := 0, math.Inf(-1)
	for _, class := range b.classes {
		if score := scores[class]; score > bestScore {
			best, bestScore = class, score
		}
	}
	return best
}

func plainMajority(y []int) int {
	counts := make(map[int]int)
	for _, v := range y {
		counts[v]++
	}
	return topVote(counts)
}
