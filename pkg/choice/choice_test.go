package choice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTernary(t *testing.T) {
	assert.Equal(t, "a", Ternary(true, "a", "b"))
	assert.Equal(t, "b", Ternary(false, "a", "b"))
}

func TestFuncTernary(t *testing.T) {
	result := FuncTernary(false, func() int { return 1 }, func() int { return 2 })
	assert.Equal(t, 2, result)
}
