package ensemble

import (
	"math/rand"
	"sort"
)

// decisionTree is a CART classifier splitting on weighted gini impurity.
// It is the shared weak learner: the forest grows it on bootstrap samples
// with per-split feature subsampling, boosting grows it on the full sample
// with per-row weights.
type treeNode struct {
	leaf      bool
	class     int
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

type decisionTree struct {
	maxDepth    int
	minLeaf     int
	maxFeatures int // candidate features per split; 0 means all
	rng         *rand.Rand

	root     *treeNode
	classes  []int
	classIdx map[int]int
}

func newDecisionTree(maxDepth, maxFeatures int, rng *rand.Rand) *decisionTree {
	return &decisionTree{
		maxDepth:    maxDepth,
		minLeaf:     1,
		maxFeatures: maxFeatures,
		rng:         rng,
	}
}

// fit grows the tree. weights may be nil for uniform weighting.
func (t *decisionTree) fit(X [][]float64, y []int, weights []float64) {
	if len(X) == 0 {
		t.root = &treeNode{leaf: true}
		return
	}
	if weights == nil {
		weights = make([]float64, len(y))
		for i := range weights {
			weights[i] = 1
		}
	}

	t.classes = uniqueClasses(y)
	t.classIdx = make(map[int]int, len(t.classes))
	for i, c := range t.classes {
		t.classIdx[c] = i
	}

	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	t.root = t.grow(X, y, weights, idx, 0)
}

func (t *decisionTree) grow(X [][]float64, y []int, w []float64, idx []int, depth int) *treeNode {
	counts := t.classWeights(y, w, idx)
	majority, total := majorityClass(t.classes, counts)

	if depth >= t.maxDepth || len(idx) <= 2*t.minLeaf || isPure(counts, total) {
		return &treeNode{leaf: true, class: majority}
	}

	feature, threshold, ok := t.bestSplit(X, y, w, idx, counts, total)
	if !ok {
		return &treeNode{leaf: true, class: majority}
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &treeNode{leaf: true, class: majority}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      t.grow(X, y, w, left, depth+1),
		right:     t.grow(X, y, w, right, depth+1),
	}
}

// bestSplit scans candidate features for the threshold minimizing weighted
// gini impurity of the two children.
func (t *decisionTree) bestSplit(X [][]float64, y []int, w []float64, idx []int, counts []float64, total float64) (int, float64, bool) {
	parentGini := gini(counts, total)
	numFeatures := len(X[idx[0]])
	candidates := t.candidateFeatures(numFeatures)

	bestGain := 1e-12
	bestFeature, bestThreshold := -1, 0.0

	sorted := make([]int, len(idx))
	leftCounts := make([]float64, len(t.classes))

	for _, f := range candidates {
		copy(sorted, idx)
		sort.Slice(sorted, func(a, b int) bool { return X[sorted[a]][f] < X[sorted[b]][f] })

		for i := range leftCounts {
			leftCounts[i] = 0
		}
		leftTotal := 0.0

		for pos := 0; pos < len(sorted)-1; pos++ {
			i := sorted[pos]
			leftCounts[t.classIdx[y[i]]] += w[i]
			leftTotal += w[i]

			v, next := X[i][f], X[sorted[pos+1]][f]
			if v == next {
				continue
			}

			rightTotal := total - leftTotal
			impurity := (leftTotal*giniLeft(leftCounts, leftTotal) +
				rightTotal*giniRight(counts, leftCounts, rightTotal)) / total
			if gain := parentGini - impurity; gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (v + next) / 2
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func (t *decisionTree) candidateFeatures(numFeatures int) []int {
	if t.maxFeatures <= 0 || t.maxFeatures >= numFeatures || t.rng == nil {
		all := make([]int, numFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	perm := t.rng.Perm(numFeatures)
	return perm[:t.maxFeatures]
}

func (t *decisionTree) classWeights(y []int, w []float64, idx []int) []float64 {
	counts := make([]float64, len(t.classes))
	for _, i := range idx {
		counts[t.classIdx[y[i]]] += w[i]
	}
	return counts
}

func (t *decisionTree) predict(x []float64) int {
	node := t.root
	for !node.leaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.class
}

func (t *decisionTree) predictAll(X [][]float64) []int {
	out := make([]int, len(X))
	for i, x := range X {
		out[i] = t.predict(x)
	}
	return out
}

func gini(counts []float64, total float64) float64 {
	if total == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := c / total
		g -= p * p
	}
	return g
}

func giniLeft(leftCounts []float64, leftTotal float64) float64 {
	return gini(leftCounts, leftTotal)
}

func giniRight(counts, leftCounts []float64, rightTotal float64) float64 {
	right := make([]float64, len(counts))
	for i := range counts {
		right[i] = counts[i] - leftCounts[i]
	}
	return gini(right, rightTotal)
}

func isPure(counts []float64, total float64) bool {
	for _, c := range counts {
		if c == total {
			return true
		}
	}
	return false
}

// majorityClass picks the heaviest class; ties resolve to the smallest
// class value so predictions are deterministic.
func majorityClass(classes []int, counts []float64) (int, float64) {
	best, bestWeight, total := 0, -1.0, 0.0
	for i, c := range counts {
		total += c
		if c > bestWeight {
			bestWeight = c
			best = classes[i]
		}
	}
	return best, total
}

func uniqueClasses(y []int) []int {
	seen := make(map[int]bool)
	var classes []int
	for _, v := range y {
		if !seen[v] {
			seen[v] = true
			classes = append(classes, v)
		}
	}
	sort.Ints(classes)
	return classes
}
