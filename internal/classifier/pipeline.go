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
	"strings"
	"time"

	"github.com/TFMV/ExpenseClassifier/pkg/bow"
	"gonum.org/v1/gonum/floats"
)

// DefaultAlpha is the Laplace (add-one) smoothing constant.
const DefaultAlpha = 1.0

// Pipeline is a fitted vectorizer and Naive Bayes model, used as one unit.
// A Pipeline is never modified after Train or Load returns it, so any number
// of goroutines may call its methods concurrently.
type Pipeline struct {
	vectorizer *bow.Vectorizer
	model      *NaiveBayes
	examples   int
	trainedAt  time.Time
}

// TrainOptions tunes Train.
type TrainOptions struct {
	Tokenizer bow.Tokenizer
	Alpha     float64
}

// CategoryScore is the score of one category for a description.
type CategoryScore struct {
	Category    string  `json:"category"`
	LogScore    float64 `json:"log_score"`
	Probability float64 `json:"probability"`
}

// Train fits a Pipeline on examples. Zero-value options select the alnum
// tokenizer and add-one smoothing.
func Train(examples TrainingSet, opts TrainOptions) (*Pipeline, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("%w: training set is empty", ErrValidation)
	}
	for i, ex := range examples {
		if strings.TrimSpace(ex.Label) == "" {
			return nil, fmt.Errorf("%w: example %d (%q) has no label", ErrValidation, i, ex.Text)
		}
	}
	if opts.Alpha == 0 {
		opts.Alpha = DefaultAlpha
	}

	vectorizer := bow.NewVectorizer(opts.Tokenizer)
	features := vectorizer.FitTransform(examples.Texts())

	model, err := FitNaiveBayes(features, examples.Labels(), vectorizer.Vocabulary().Len(), opts.Alpha)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		vectorizer: vectorizer,
		model:      model,
		examples:   len(examples),
		trainedAt:  time.Now().UTC(),
	}, nil
}

// Predict returns the most likely category for text. Empty text falls back to
// the category with the highest prior.
func (p *Pipeline) Predict(text string) string {
	return p.model.Predict(p.vectorizer.Encode(text))
}

// Scores returns every category with its log score and normalized probability,
// in the model's category order.
func (p *Pipeline) Scores(text string) []CategoryScore {
	logScores := p.model.Scores(p.vectorizer.Encode(text))
	norm := floats.LogSumExp(logScores)

	out := make([]CategoryScore, len(logScores))
	for i, category := range p.model.classes {
		out[i] = CategoryScore{
			Category:    category,
			LogScore:    logScores[i],
			Probability: math.Exp(logScores[i] - norm),
		}
	}
	return out
}

// Categories lists the categories the pipeline can predict.
func (p *Pipeline) Categories() []string {
	return p.model.Classes()
}

// Info summarizes the pipeline for logs.
func (p *Pipeline) Info() Info {
	return Info{
		Categories: p.model.Classes(),
		VocabSize:  p.vectorizer.Vocabulary().Len(),
		Tokenizer:  p.vectorizer.Tokenizer().Name(),
		Alpha:      p.model.alpha,
		Examples:   p.examples,
		TrainedAt:  p.trainedAt,
	}
}

// Info describes a fitted pipeline.
type Info struct {
	Categories []string
	VocabSize  int
	Tokenizer  string
	Alpha      float64
	Examples   int
	TrainedAt  time.Time
}
