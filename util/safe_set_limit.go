package util

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SafeSetLimit sets the limit on g. It panics if the limit is 0, since an
// errgroup with a limit of 0 can never start a goroutine.
func SafeSetLimit(g *errgroup.Group, limit int) {
	if limit == 0 {
		panic("limit cannot be 0")
	}

	g.SetLimit(limit)
}

// ConcurrencyLimit returns configured when it is positive, otherwise the number
// of CPUs available to the process.
func ConcurrencyLimit(configured int) int {
	if configured > 0 {
		return configured
	}

	return runtime.GOMAXPROCS(0)
}
