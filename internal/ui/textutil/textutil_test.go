package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("anything", 0))
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Invo…", Truncate("Invoices", 5))
	// Wide runes count two columns.
	assert.Equal(t, "日…", Truncate("日本語", 4))
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab  ", Fit("ab", 4))
	assert.Equal(t, "abc…", Fit("abcdef", 4))
	assert.Equal(t, "", Fit("ab", 0))
	assert.Equal(t, 4, Width(Fit("日本語", 4)))
}

func TestCenter(t *testing.T) {
	assert.Equal(t, " ab  ", Center("ab", 5))
	assert.Equal(t, "abcdef", Center("abcdef", 3+3))
}
