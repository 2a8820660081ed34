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
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/TFMV/ExpenseClassifier/pkg/bow"
)

// artifactVersion changes whenever the artifact layout changes.
const artifactVersion = 1

// artifact is the gob-encoded form of a Pipeline.
type artifact struct {
	Version        int
	Tokenizer      string
	Vocabulary     []string
	Classes        []string
	LogPriors      []float64
	LogLikelihoods [][]float64
	Alpha          float64
	Examples       int
	TrainedAt      time.Time
}

// Persist writes the pipeline to path, replacing any existing file. The
// artifact is written to a temporary file first, so a failed write leaves the
// previous file untouched.
func Persist(p *Pipeline, path string) error {
	a := artifact{
		Version:        artifactVersion,
		Tokenizer:      p.vectorizer.Tokenizer().Name(),
		Vocabulary:     p.vectorizer.Vocabulary().Terms(),
		Classes:        p.model.Classes(),
		LogPriors:      append([]float64(nil), p.model.logPriors...),
		LogLikelihoods: p.model.rows(),
		Alpha:          p.model.alpha,
		Examples:       p.examples,
		TrainedAt:      p.trainedAt,
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: unable to create artifact: %v", ErrIO, err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(&a); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: unable to encode artifact: %v", ErrIO, err)
	}
	// CreateTemp uses 0600; the artifact must be readable by the serving user.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: unable to set artifact permissions: %v", ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: unable to sync artifact: %v", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: unable to close artifact: %v", ErrIO, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: unable to replace artifact: %v", ErrIO, err)
	}
	return nil
}

// Load reads a pipeline written by Persist.
func Load(path string) (*Pipeline, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open artifact: %v", ErrIO, err)
	}
	defer file.Close()

	var a artifact
	if err := gob.NewDecoder(file).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: unable to decode artifact %s: %v", ErrDeserialization, path, err)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("%w: artifact version %d, want %d", ErrDeserialization, a.Version, artifactVersion)
	}

	tokenizer, err := bow.TokenizerByName(a.Tokenizer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	vectorizer, err := bow.RestoreVectorizer(tokenizer, a.Vocabulary)
	if err != nil {
		return nil, fmt.Errorf("%w: vocabulary: %v", ErrDeserialization, err)
	}
	model, err := newNaiveBayes(a.Classes, a.LogPriors, a.LogLikelihoods, a.Alpha)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	if model.VocabSize() != vectorizer.Vocabulary().Len() {
		return nil, fmt.Errorf("%w: model has %d terms but vocabulary has %d",
			ErrDeserialization, model.VocabSize(), vectorizer.Vocabulary().Len())
	}

	return &Pipeline{
		vectorizer: vectorizer,
		model:      model,
		examples:   a.Examples,
		trainedAt:  a.TrainedAt,
	}, nil
}
