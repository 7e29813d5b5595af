package eval

import (
	"time"

	env "github.com/havrydotdev/treelox/environment"
)

var start = time.Now()

// newClock returns the seconds elapsed since the process started.
func newClock() Callable {
	return NewNativeFun(0, func(e *Evaluator, args []any) (any, error) {
		return time.Since(start).Seconds(), nil
	})
}

func newGlobals() *env.Env {
	global := env.New()
	global.Define("clock", newClock())

	return global
}
