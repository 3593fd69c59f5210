package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("hello", 100, 20)
	assert.Equal(t, []string{"hello"}, chunks)
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 30) // 300 chars
	chunks := SplitText(text, 100, 20)

	assert.True(t, len(chunks) > 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 100)
	}

	// Consecutive chunks share the overlap region
	first := chunks[0]
	second := chunks[1]
	assert.Equal(t, first[len(first)-20:], second[:20])
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("x", 50)
	chunks := SplitText(text, 10, 15)

	// Falls back to non-overlapping steps instead of looping forever
	assert.Equal(t, 5, len(chunks))
}

func TestSplitTextMultibyte(t *testing.T) {
	text := strings.Repeat("日本語テキスト", 50)
	chunks := SplitText(text, 100, 10)

	var rebuilt strings.Builder
	for i, c := range chunks {
		if i == 0 {
			rebuilt.WriteString(c)
			continue
		}
		rebuilt.WriteString(string([]rune(c)[10:]))
	}
	assert.Equal(t, text, rebuilt.String())
}
