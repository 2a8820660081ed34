// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package classifier

import (
	"fmt"
	"math"

	"github.com/TFMV/ExpenseClassifier/pkg/bow"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// NaiveBayes is a multinomial Naive Bayes model over bag-of-words features.
// Classes keep the order in which their labels first appear in training.
type NaiveBayes struct {
	classes        []string
	logPriors      []float64
	logLikelihoods *mat.Dense // classes x vocabulary
	alpha          float64
}

// FitNaiveBayes estimates class priors from label frequency and per-class term
// likelihoods as (count+alpha) / (classTotal+alpha*vocabSize).
func FitNaiveBayes(features []bow.FeatureVector, labels []string, vocabSize int, alpha float64) (*NaiveBayes, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("%w: no training examples", ErrValidation)
	}
	if len(features) != len(labels) {
		return nil, fmt.Errorf("%w: %d feature vectors for %d labels", ErrValidation, len(features), len(labels))
	}
	if vocabSize <= 0 {
		return nil, fmt.Errorf("%w: training texts contain no tokens", ErrValidation)
	}
	if !(alpha > 0) || math.IsInf(alpha, 0) {
		return nil, fmt.Errorf("%w: smoothing constant must be positive, got %v", ErrValidation, alpha)
	}

	classIndex := make(map[string]int)
	var classes []string
	var docCounts []int
	for _, label := range labels {
		if _, ok := classIndex[label]; !ok {
			classIndex[label] = len(classes)
			classes = append(classes, label)
			docCounts = append(docCounts, 0)
		}
		docCounts[classIndex[label]]++
	}

	counts := mat.NewDense(len(classes), vocabSize, nil)
	for i, fv := range features {
		c := classIndex[labels[i]]
		for term, n := range fv {
			if term < 0 || term >= vocabSize {
				return nil, fmt.Errorf("%w: term index %d outside vocabulary of %d", ErrValidation, term, vocabSize)
			}
			counts.Set(c, term, counts.At(c, term)+float64(n))
		}
	}

	nb := &NaiveBayes{
		classes:        classes,
		logPriors:      make([]float64, len(classes)),
		logLikelihoods: mat.NewDense(len(classes), vocabSize, nil),
		alpha:          alpha,
	}
	total := float64(len(labels))
	for c := range classes {
		nb.logPriors[c] = math.Log(float64(docCounts[c]) / total)

		row := counts.RawRowView(c)
		denominator := floats.Sum(row) + alpha*float64(vocabSize)
		for term, n := range row {
			nb.logLikelihoods.Set(c, term, math.Log((n+alpha)/denominator))
		}
	}
	return nb, nil
}

// newNaiveBayes rebuilds a fitted model from its persisted parameters.
func newNaiveBayes(classes []string, logPriors []float64, rows [][]float64, alpha float64) (*NaiveBayes, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("model has no classes")
	}
	if len(logPriors) != len(classes) || len(rows) != len(classes) {
		return nil, fmt.Errorf("model has %d classes, %d priors and %d likelihood rows", len(classes), len(logPriors), len(rows))
	}
	vocabSize := len(rows[0])
	if vocabSize == 0 {
		return nil, fmt.Errorf("model has an empty vocabulary")
	}

	seen := make(map[string]bool, len(classes))
	data := make([]float64, 0, len(classes)*vocabSize)
	for c, row := range rows {
		if seen[classes[c]] {
			return nil, fmt.Errorf("duplicate class %q", classes[c])
		}
		seen[classes[c]] = true
		if len(row) != vocabSize {
			return nil, fmt.Errorf("likelihood row %d has %d terms, want %d", c, len(row), vocabSize)
		}
		if floats.HasNaN(row) || math.IsNaN(logPriors[c]) {
			return nil, fmt.Errorf("class %q has NaN parameters", classes[c])
		}
		data = append(data, row...)
	}

	return &NaiveBayes{
		classes:        append([]string(nil), classes...),
		logPriors:      append([]float64(nil), logPriors...),
		logLikelihoods: mat.NewDense(len(classes), vocabSize, data),
		alpha:          alpha,
	}, nil
}

// Scores returns the joint log score of every class for fv.
func (nb *NaiveBayes) Scores(fv bow.FeatureVector) []float64 {
	_, vocabSize := nb.logLikelihoods.Dims()
	scores := mat.NewVecDense(len(nb.classes), nil)
	if len(fv) > 0 {
		scores.MulVec(nb.logLikelihoods, fv.Dense(vocabSize))
	}
	out := scores.RawVector().Data
	floats.Add(out, nb.logPriors)
	return out
}

// Predict returns the highest-scoring class. Ties go to the earliest class.
func (nb *NaiveBayes) Predict(fv bow.FeatureVector) string {
	return nb.classes[floats.MaxIdx(nb.Scores(fv))]
}

// Classes returns the class labels in score order.
func (nb *NaiveBayes) Classes() []string {
	return append([]string(nil), nb.classes...)
}

// VocabSize returns the number of term columns.
func (nb *NaiveBayes) VocabSize() int {
	_, c := nb.logLikelihoods.Dims()
	return c
}

func (nb *NaiveBayes) rows() [][]float64 {
	out := make([][]float64, len(nb.classes))
	for c := range nb.classes {
		out[c] = mat.Row(nil, c, nb.logLikelihoods)
	}
	return out
}
