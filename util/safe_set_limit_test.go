package util

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestSafeSetLimit(t *testing.T) {
	t.Run("valid positive limit", func(t *testing.T) {
		g := &errgroup.Group{}

		assert.NotPanics(t, func() {
			SafeSetLimit(g, 1)
			SafeSetLimit(g, 10)
		})
	})

	t.Run("zero limit panics", func(t *testing.T) {
		g := &errgroup.Group{}

		assert.PanicsWithValue(t, "limit cannot be 0", func() {
			SafeSetLimit(g, 0)
		})
	})

	t.Run("negative limit removes the limit", func(t *testing.T) {
		g := &errgroup.Group{}

		assert.NotPanics(t, func() {
			SafeSetLimit(g, -1)
		})
	})
}

func TestConcurrencyLimit(t *testing.T) {
	assert.Equal(t, 3, ConcurrencyLimit(3))
	assert.Equal(t, runtime.GOMAXPROCS(0), ConcurrencyLimit(0))
	assert.Equal(t, runtime.GOMAXPROCS(0), ConcurrencyLimit(-5))
}
