package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDataset(t *testing.T) {
	seed := SeedDataset()
	require.Len(t, seed, 16)

	counts := make(map[string]int)
	for _, ex := range seed {
		counts[ex.Label]++
	}
	assert.Equal(t, map[string]int{"Food": 5, "Travel": 4, "Bills": 4, "Shopping": 3}, counts)
	assert.Equal(t, "pizza", seed.Texts()[0])
	assert.Equal(t, "Shopping", seed.Labels()[15])
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDataset_YAML(t *testing.T) {
	path := writeFile(t, "dataset.yaml", `
examples:
  - text: pizza
    label: Food
  - text: uber ride
    label: Travel
`)

	set, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, TrainingSet{
		{Text: "pizza", Label: "Food"},
		{Text: "uber ride", Label: "Travel"},
	}, set)
}

func TestLoadDataset_CSV(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"With header", "text,label\npizza,Food\n\"bus, ticket\",Travel\n"},
		{"Without header", "pizza,Food\n\"bus, ticket\",Travel\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := LoadDataset(writeFile(t, "dataset.csv", tt.content))
			require.NoError(t, err)
			assert.Equal(t, TrainingSet{
				{Text: "pizza", Label: "Food"},
				{Text: "bus, ticket", Label: "Travel"},
			}, set)
		})
	}
}

func TestLoadDataset_Errors(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrIO)

	_, err = LoadDataset(writeFile(t, "dataset.json", `{}`))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = LoadDataset(writeFile(t, "dataset.csv", "pizza,Food\nburger\n"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = LoadDataset(writeFile(t, "dataset.yml", "examples: [oops"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = LoadDataset(writeFile(t, "dataset.yml", "samples: []"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoadDataset_TrainsLikeSeed(t *testing.T) {
	content := "text,label\n"
	for _, ex := range SeedDataset() {
		content += ex.Text + "," + ex.Label + "\n"
	}

	set, err := LoadDataset(writeFile(t, "seed.csv", content))
	require.NoError(t, err)
	assert.Equal(t, SeedDataset(), set)

	p, err := Train(set, TrainOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Shopping", p.Predict("amazon order"))
}
