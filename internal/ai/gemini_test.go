package ai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunesKeepsValidUTF8(t *testing.T) {
	// "ế" is three bytes in UTF-8; a byte-offset cut inside it would
	// produce an invalid tail.
	text := strings.Repeat("Tiếng Việt ", 50)
	for limit := 1; limit < 40; limit++ {
		out := truncateRunes(text, limit)
		assert.LessOrEqual(t, len(out), limit)
		assert.True(t, utf8.ValidString(out), "limit %d produced invalid UTF-8", limit)
		assert.True(t, strings.HasPrefix(text, out))
	}
}

func TestTruncateRunesShortInputUntouched(t *testing.T) {
	assert.Equal(t, "ngắn", truncateRunes("ngắn", documentContextLimit))
	assert.Equal(t, "", truncateRunes("", 10))
}
