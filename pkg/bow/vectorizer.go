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

package bow

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Vocabulary maps terms to dense indexes assigned in first-seen order.
type Vocabulary struct {
	index map[string]int
	terms []string
}

// NewVocabulary builds a vocabulary whose indexes follow the order of terms.
func NewVocabulary(terms []string) (*Vocabulary, error) {
	v := &Vocabulary{
		index: make(map[string]int, len(terms)),
		terms: make([]string, 0, len(terms)),
	}
	for _, term := range terms {
		if term == "" {
			return nil, fmt.Errorf("empty term at index %d", len(v.terms))
		}
		if _, exists := v.index[term]; exists {
			return nil, fmt.Errorf("duplicate term %q", term)
		}
		v.add(term)
	}
	return v, nil
}

func (v *Vocabulary) add(term string) {
	v.index[term] = len(v.terms)
	v.terms = append(v.terms, term)
}

// Index returns the index of term and whether it is known.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns a copy of the terms in index order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// FeatureVector is a sparse bag-of-words: vocabulary index -> term count.
type FeatureVector map[int]int

// Total returns the number of counted terms.
func (fv FeatureVector) Total() int {
	total := 0
	for _, c := range fv {
		total += c
	}
	return total
}

// Dense expands the vector to n columns.
func (fv FeatureVector) Dense(n int) *mat.VecDense {
	data := make([]float64, n)
	for i, c := range fv {
		if i >= 0 && i < n {
			data[i] = float64(c)
		}
	}
	return mat.NewVecDense(n, data)
}

// Vectorizer turns documents into term-count vectors
type Vectorizer struct {
	tokenizer  Tokenizer
	vocabulary *Vocabulary
}

// NewVectorizer creates a new Vectorizer
func NewVectorizer(tokenizer Tokenizer) *Vectorizer {
	if tokenizer == nil {
		tokenizer = AlnumTokenizer{}
	}
	return &Vectorizer{
		tokenizer:  tokenizer,
		vocabulary: &Vocabulary{index: make(map[string]int)},
	}
}

// RestoreVectorizer rebuilds a fitted vectorizer from its terms in index order.
func RestoreVectorizer(tokenizer Tokenizer, terms []string) (*Vectorizer, error) {
	vocab, err := NewVocabulary(terms)
	if err != nil {
		return nil, err
	}
	return &Vectorizer{tokenizer: tokenizer, vocabulary: vocab}, nil
}

// Fit builds the vocabulary from the input documents
func (v *Vectorizer) Fit(docs []string) {
	for _, doc := range docs {
		for _, term := range v.tokenizer.Tokenize(doc) {
			if _, exists := v.vocabulary.index[term]; !exists {
				v.vocabulary.add(term)
			}
		}
	}
}

// Encode counts the known terms of a single document. Unknown terms are dropped.
func (v *Vectorizer) Encode(doc string) FeatureVector {
	fv := make(FeatureVector)
	for _, term := range v.tokenizer.Tokenize(doc) {
		if i, ok := v.vocabulary.index[term]; ok {
			fv[i]++
		}
	}
	return fv
}

// Transform encodes the input documents
func (v *Vectorizer) Transform(docs []string) []FeatureVector {
	vectors := make([]FeatureVector, len(docs))
	for i, doc := range docs {
		vectors[i] = v.Encode(doc)
	}
	return vectors
}

// FitTransform fits the vectorizer to the input documents and then transforms them
func (v *Vectorizer) FitTransform(docs []string) []FeatureVector {
	v.Fit(docs)
	return v.Transform(docs)
}

// Vocabulary returns the fitted vocabulary.
func (v *Vectorizer) Vocabulary() *Vocabulary {
	return v.vocabulary
}

// Tokenizer returns the tokenizer the vocabulary was built with.
func (v *Vectorizer) Tokenizer() Tokenizer {
	return v.tokenizer
}
