package colorutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLineColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Red, ParseLineColor("Red"))
	assert.Equal(t, Orange, ParseLineColor("Orange"))
	assert.Equal(t, Black, ParseLineColor("Black"))

	// Unknown names fall back to black.
	assert.Equal(t, Black, ParseLineColor("Chartreuse"))
	assert.Equal(t, Black, ParseLineColor(""))
}

func TestLineColorNames(t *testing.T) {
	t.Parallel()

	names := LineColorNames()
	assert.Len(t, names, len(lineColors))
	for _, n := range names {
		_, ok := lineColors[n]
		assert.True(t, ok, "name %q missing from color map", n)
	}

	// Callers may mutate the returned slice without affecting the picker order.
	names[0] = "mutated"
	assert.Equal(t, "Black", LineColorNames()[0])
}
