package runner

import (
	"os"
	"strings"
	"testing"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
)

// Run checks property from a Go test, configured from ARBSHRINK_*
// environment variables. The property is named after tb.
//
//	func TestColor(t *testing.T) {
//	    runner.Run(t, arbshrink.Arb(arbshrink.FromArbitrary[RGB]()), func(c RGB) error {
//	        ...
//	    })
//	}
func Run[V any](tb testing.TB, s arbshrink.Strategy[V], property func(V) error, opts ...Option) {
	tb.Helper()

	cfg, err := LoadConfig(LoadConfigInput{Env: environ()})
	if err != nil {
		tb.Fatalf("arbshrink config: %v", err)
	}

	err = Check(New(cfg, opts...), tb.Name(), s, property)
	if err != nil {
		tb.Fatal(err)
	}
}

func environ() map[string]string {
	env := make(map[string]string)

	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(key, "ARBSHRINK_") {
			env[key] = value
		}
	}

	return env
}
