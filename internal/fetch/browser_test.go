package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("   Loading...   "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength)))
}

func TestAllocatorOptions_ExtendsDefaults(t *testing.T) {
	opts := AllocatorOptions()
	assert.Len(t, opts, len(AllocatorOptions()))
	assert.Greater(t, len(opts), 4)
}
