package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Mage", StripTags("<span class=\"role\">Mage</span> "))
	assert.Equal(t, "", StripTags("<br/>"))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "Ahri", FirstNonEmpty("", "  ", " Ahri ", "Lux"))
	assert.Equal(t, "", FirstNonEmpty())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(math.NaN(), 0, 100))
	assert.Equal(t, 0.0, Clamp(math.Inf(1), 0, 100))
	assert.Equal(t, 100.0, Clamp(140, 0, 100))
	assert.Equal(t, 0.0, Clamp(-3, 0, 100))
	assert.Equal(t, 42.5, Clamp(42.5, 0, 100))
}

func TestParseLevel(t *testing.T) {
	lvl, ok := ParseLevel("WARN")
	assert.True(t, ok)
	assert.Equal(t, zapcore.WarnLevel, lvl)

	lvl, ok = ParseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, zapcore.InfoLevel, lvl)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "Монг...", TruncateString("Монгол", 4))
	assert.Equal(t, "Ahri", TruncateString("Ahri", 10))
}
