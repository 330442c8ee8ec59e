// Package ensemble trains and evaluates the classifier set on a curated
// feature matrix: reproducible 70/30 split, train-only scaling, held-out
// accuracy plus k-fold cross-validation on the training partition.
package ensemble

import (
	"fmt"
	"math/rand"

	"github.com/quantbyte/signalscan/models"
)

// Classifier is the contract every ensemble algorithm satisfies.
type Classifier interface {
	Fit(X [][]float64, y []int)
	Predict(X [][]float64) []int
}

// AlgorithmSpec names an algorithm and constructs fresh, untrained
// instances of it (cross-validation needs one per fold).
type AlgorithmSpec struct {
	Name string
	New  func() Classifier
}

// Options configures the training protocol.
type Options struct {
	TestRatio  float64
	CVFolds    int
	Seed       int64
	Algorithms []AlgorithmSpec
}

// DefaultAlgorithms is the reference ensemble: a bagged decision forest and
// a boosted-tree classifier.
func DefaultAlgorithms(forestTrees, forestDepth, boostStages, boostDepth int, seed int64) []AlgorithmSpec {
	return []AlgorithmSpec{
		{
			Name: "random_forest",
			New:  func() Classifier { return NewRandomForest(forestTrees, forestDepth, seed) },
		},
		{
			Name: "boosted_trees",
			New:  func() Classifier { return NewBoostedTrees(boostStages, boostDepth, seed) },
		},
	}
}

// TrainedModel owns a fitted classifier, the scaler it was trained with and
// its recorded accuracy metrics. It is immutable after Train returns and is
// discarded at the end of the instrument's evaluation.
type TrainedModel struct {
	Algorithm  string
	Scaler     *StandardScaler
	Classifier Classifier
	Accuracy   float64
	CVAccuracy float64
}

// Predict scales raw feature rows with the model's training scaler and
// classifies them.
func (m *TrainedModel) Predict(X [][]float64) []int {
	return m.Classifier.Predict(m.Scaler.Transform(X))
}

// SplitIndices shuffles row indices with a fixed seed and splits them into
// training and held-out partitions. The same (n, ratio, seed) triple always
// produces the same split, so every algorithm is compared on identical
// partitions.
func SplitIndices(n int, testRatio float64, seed int64) (train, test []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	cut := n - int(float64(n)*testRatio)
	return perm[:cut], perm[cut:]
}

// Train fits every configured algorithm on the feature set and records
// held-out and cross-validated accuracy for each.
func Train(fs *models.FeatureSet, opts Options) ([]*TrainedModel, error) {
	if fs == nil || len(fs.Rows) == 0 {
		return nil, fmt.Errorf("%w: empty feature set", models.ErrInsufficientData)
	}

	X := fs.Matrix()
	y := fs.Targets()
	trainIdx, testIdx := SplitIndices(len(X), opts.TestRatio, opts.Seed)
	if len(trainIdx) == 0 || len(testIdx) == 0 {
		return nil, fmt.Errorf("%w: %d rows cannot be split %.0f/%.0f",
			models.ErrInsufficientData, len(X), (1-opts.TestRatio)*100, opts.TestRatio*100)
	}

	trainX, trainY := subset(X, trainIdx), subsetInts(y, trainIdx)
	testX, testY := subset(X, testIdx), subsetInts(y, testIdx)

	scaler := &StandardScaler{}
	scaler.Fit(trainX)
	scaledTrainX := scaler.Transform(trainX)
	scaledTestX := scaler.Transform(testX)

	trained := make([]*TrainedModel, 0, len(opts.Algorithms))
	for _, algo := range opts.Algorithms {
		clf := algo.New()
		clf.Fit(scaledTrainX, trainY)

		trained = append(trained, &TrainedModel{
			Algorithm:  algo.Name,
			Scaler:     scaler,
			Classifier: clf,
			Accuracy:   accuracy(clf.Predict(scaledTestX), testY),
			CVAccuracy: crossValidate(algo, trainX, trainY, opts.CVFolds),
		})
	}
	return trained, nil
}

// crossValidate runs k-fold validation over the training partition. Scaler
// and classifier are refit per fold on the fold's own training rows, so no
// validation statistics leak into either.
func crossValidate(algo AlgorithmSpec, X [][]float64, y []int, folds int) float64 {
	if folds < 2 || len(X) < folds {
		return 0
	}

	var total float64
	for f := 0; f < folds; f++ {
		lo := f * len(X) / folds
		hi := (f + 1) * len(X) / folds

		var fitX [][]float64
		var fitY []int
		for i := range X {
			if i < lo || i >= hi {
				fitX = append(fitX, X[i])
				fitY = append(fitY, y[i])
			}
		}

		scaler := &StandardScaler{}
		scaler.Fit(fitX)

		clf := algo.New()
		clf.Fit(scaler.Transform(fitX), fitY)

		pred := clf.Predict(scaler.Transform(X[lo:hi]))
		total += accuracy(pred, y[lo:hi])
	}
	return total / float64(folds)
}

func accuracy(pred, actual []int) float64 {
	if len(actual) == 0 {
		return 0
	}
	correct := 0
	for i := range actual {
		if pred[i] == actual[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(actual))
}

func subset(X [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = X[j]
	}
	return out
}

func subsetInts(y []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}
