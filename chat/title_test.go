package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTitle(t *testing.T) {
	assert.Equal(t, "Hello", deriveTitle("Hello"))
	assert.Equal(t, strings.Repeat("a", 30), deriveTitle(strings.Repeat("a", 30)))
	assert.Equal(t, strings.Repeat("a", 30)+"...", deriveTitle(strings.Repeat("a", 31)))
}

func TestDeriveTitleCountsRunes(t *testing.T) {
	content := strings.Repeat("日", 31)
	assert.Equal(t, strings.Repeat("日", 30)+"...", deriveTitle(content))
}
