package classifier

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingPredictor struct {
	calls int
}

func (c *countingPredictor) Predict(text string) string {
	c.calls++
	return "Food"
}

func (c *countingPredictor) Categories() []string {
	return []string{"Food"}
}

func TestCachedPredictor(t *testing.T) {
	next := &countingPredictor{}
	cached := NewCachedPredictor(next, time.Minute)

	assert.Equal(t, "Food", cached.Predict("pizza"))
	assert.Equal(t, "Food", cached.Predict("pizza"))
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, cached.Len())

	cached.Predict("burger")
	assert.Equal(t, 2, next.calls)
	assert.Equal(t, []string{"Food"}, cached.Categories())
}

func TestCachedPredictor_WrapsPipeline(t *testing.T) {
	var p Predictor = trainSeed(t)
	cached := NewCachedPredictor(p, time.Minute)

	assert.Equal(t, p.Predict("flight booking"), cached.Predict("flight booking"))
	assert.Equal(t, p.Categories(), cached.Categories())
}

func TestCachedPredictor_BoundedKeysAndEntries(t *testing.T) {
	next := &countingPredictor{}
	cached := NewCachedPredictor(next, time.Minute)
	cached.maxEntries = 3

	long := strings.Repeat("pizza ", 1<<17)
	assert.Len(t, cacheKey(long), 64)
	assert.NotEqual(t, cacheKey(long), cacheKey(long+"x"))

	cached.Predict(long)
	cached.Predict(long)
	assert.Equal(t, 1, next.calls)

	for i := 0; i < 10; i++ {
		assert.Equal(t, "Food", cached.Predict(fmt.Sprintf("order %d", i)))
	}
	assert.Equal(t, 3, cached.Len())
	assert.Equal(t, 11, next.calls)
}
