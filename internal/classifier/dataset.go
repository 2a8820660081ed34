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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// TrainingExample is one labeled expense description.
type TrainingExample struct {
	Text  string `yaml:"text"`
	Label string `yaml:"label"`
}

// TrainingSet is an ordered list of training examples.
type TrainingSet []TrainingExample

// Texts returns the example texts in order.
func (ts TrainingSet) Texts() []string {
	texts := make([]string, len(ts))
	for i, ex := range ts {
		texts[i] = ex.Text
	}
	return texts
}

// Labels returns the example labels in order.
func (ts TrainingSet) Labels() []string {
	labels := make([]string, len(ts))
	for i, ex := range ts {
		labels[i] = ex.Label
	}
	return labels
}

// SeedDataset returns the built-in demo dataset.
func SeedDataset() TrainingSet {
	return TrainingSet{
		{Text: "pizza", Label: "Food"},
		{Text: "burger", Label: "Food"},
		{Text: "sandwich", Label: "Food"},
		{Text: "momos", Label: "Food"},
		{Text: "biryani", Label: "Food"},
		{Text: "uber ride", Label: "Travel"},
		{Text: "bus ticket", Label: "Travel"},
		{Text: "flight booking", Label: "Travel"},
		{Text: "train ticket", Label: "Travel"},
		{Text: "electricity bill", Label: "Bills"},
		{Text: "water bill", Label: "Bills"},
		{Text: "internet recharge", Label: "Bills"},
		{Text: "mobile recharge", Label: "Bills"},
		{Text: "shoes shopping", Label: "Shopping"},
		{Text: "clothes shopping", Label: "Shopping"},
		{Text: "amazon order", Label: "Shopping"},
	}
}

type datasetFile struct {
	Examples TrainingSet `yaml:"examples"`
}

// LoadDataset reads a training set from a .yaml/.yml or .csv file.
func LoadDataset(path string) (TrainingSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open dataset: %v", ErrIO, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return readYAMLDataset(f)
	case ".csv":
		return readCSVDataset(f)
	default:
		return nil, fmt.Errorf("%w: unsupported dataset format %q", ErrValidation, filepath.Ext(path))
	}
}

func readYAMLDataset(r io.Reader) (TrainingSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read dataset: %v", ErrIO, err)
	}

	var file datasetFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("%w: unable to unmarshal dataset: %v", ErrValidation, err)
	}
	return file.Examples, nil
}

func readCSVDataset(r io.Reader) (TrainingSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var set TrainingSet
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed dataset row: %v", ErrValidation, err)
		}
		if line == 1 && strings.EqualFold(record[0], "text") && strings.EqualFold(record[1], "label") {
			continue
		}
		set = append(set, TrainingExample{Text: record[0], Label: record[1]})
	}
	return set, nil
}
