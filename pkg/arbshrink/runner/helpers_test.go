package runner_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
	"github.com/calvinalkan/arbshrink/pkg/arbshrink/runner"
)

// byteList constructs the whole input as a list, so every shorter prefix
// yields a shorter list.
var byteList = arbshrink.ConstructorFunc[[]byte](func(u *arbshrink.Unstructured) ([]byte, error) {
	return u.Rest(), nil
})

func sum(b []byte) int {
	total := 0
	for _, v := range b {
		total += int(v)
	}

	return total
}

func testConfig(seed int64) runner.Config {
	cfg := runner.DefaultConfig()
	cfg.Seed = seed
	cfg.Cases = 64

	return cfg
}

func newTestRunner(t *testing.T, cfg runner.Config) (*runner.Runner, *logtest.Hook) {
	t.Helper()

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	return runner.New(cfg, runner.WithLogger(log)), hook
}
