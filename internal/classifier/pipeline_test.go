package classifier

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/TFMV/ExpenseClassifier/pkg/bow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainSeed(t *testing.T) *Pipeline {
	t.Helper()
	p, err := Train(SeedDataset(), TrainOptions{})
	require.NoError(t, err)
	return p
}

func TestTrain_SeedPredictions(t *testing.T) {
	p := trainSeed(t)

	tests := []struct {
		input    string
		expected string
	}{
		{"pizza from dominos", "Food"},
		{"flight booking", "Travel"},
		{"electricity bill", "Bills"},
		{"amazon order", "Shopping"},
		{"Uber Ride to airport", "Travel"},
		{"MOBILE recharge!", "Bills"},
		{"clothes", "Shopping"},
		{"biryani", "Food"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Predict(tt.input))
		})
	}
}

func TestTrain_EveryCategoryIsReachable(t *testing.T) {
	p := trainSeed(t)

	reached := make(map[string]bool)
	for _, ex := range SeedDataset() {
		reached[p.Predict(ex.Text)] = true
	}
	for _, category := range p.Categories() {
		assert.True(t, reached[category], "category %s is never predicted", category)
	}
}

func TestPredict_EmptyTextFallsBackToPrior(t *testing.T) {
	p := trainSeed(t)

	for _, input := range []string{"", "   ", "\t\n", "!!!", "zzz qqq"} {
		got := p.Predict(input)
		assert.Equal(t, "Food", got, "input %q", input)
		assert.Contains(t, p.Categories(), got)
	}
}

func TestPredict_Deterministic(t *testing.T) {
	p := trainSeed(t)
	probes := []string{"pizza from dominos", "bus", "", "water bill and shoes"}

	for _, probe := range probes {
		first := p.Predict(probe)
		for i := 0; i < 20; i++ {
			require.Equal(t, first, p.Predict(probe))
		}
	}
}

func TestPredict_Concurrent(t *testing.T) {
	p := trainSeed(t)

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := p.Predict("electricity bill"); got != "Bills" {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent prediction = %s, want Bills", got)
	}
}

func TestPredict_TieGoesToFirstCategory(t *testing.T) {
	p, err := Train(TrainingSet{
		{Text: "alpha", Label: "A"},
		{Text: "beta", Label: "B"},
	}, TrainOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, p.Categories())
	assert.Equal(t, "A", p.Predict(""))
	assert.Equal(t, "A", p.Predict("alpha beta"))
	assert.Equal(t, "B", p.Predict("beta"))
}

func TestTrain_Validation(t *testing.T) {
	tests := []struct {
		name     string
		examples TrainingSet
		opts     TrainOptions
	}{
		{"Empty set", TrainingSet{}, TrainOptions{}},
		{"Nil set", nil, TrainOptions{}},
		{"Missing label", TrainingSet{{Text: "pizza", Label: " "}}, TrainOptions{}},
		{"No tokens", TrainingSet{{Text: "!!!", Label: "Food"}}, TrainOptions{}},
		{"Negative alpha", SeedDataset(), TrainOptions{Alpha: -1}},
		{"NaN alpha", SeedDataset(), TrainOptions{Alpha: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Train(tt.examples, tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
		})
	}
}

func TestScores(t *testing.T) {
	p := trainSeed(t)
	scores := p.Scores("flight booking")

	require.Len(t, scores, 4)
	assert.Equal(t, []string{"Food", "Travel", "Bills", "Shopping"}, []string{
		scores[0].Category, scores[1].Category, scores[2].Category, scores[3].Category,
	})

	total := 0.0
	best := scores[0]
	for _, s := range scores {
		total += s.Probability
		if s.LogScore > best.LogScore {
			best = s
		}
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.Equal(t, "Travel", best.Category)
}

func TestInfo(t *testing.T) {
	p := trainSeed(t)
	info := p.Info()

	assert.Equal(t, 16, info.Examples)
	assert.Equal(t, 23, info.VocabSize)
	assert.Equal(t, bow.TokenizerAlnum, info.Tokenizer)
	assert.Equal(t, DefaultAlpha, info.Alpha)
	assert.False(t, info.TrainedAt.IsZero())
}

func TestTrain_ProseTokenizer(t *testing.T) {
	p, err := Train(SeedDataset(), TrainOptions{Tokenizer: bow.ProseTokenizer{}})
	require.NoError(t, err)

	assert.Equal(t, "Food", p.Predict("pizza from dominos"))
	assert.Equal(t, "Shopping", p.Predict("amazon order"))
}
