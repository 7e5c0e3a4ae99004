// Package runner is a small property-test runner for arbshrink strategies.
//
// It plays the host-framework role: it owns the random source, enforces
// rejection budgets, drives the shrink search on failure and persists
// minimal failing inputs so later runs replay them first.
package runner

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
)

// Runner supplies randomness and rejection bookkeeping to strategies and
// runs property checks.
//
// A Runner is not safe for concurrent use. Give each goroutine its own.
type Runner struct {
	cfg  Config
	seed int64
	rng  *rand.Rand
	log  logrus.FieldLogger

	localRejects int
}

var _ arbshrink.Source = (*Runner)(nil)

// Option configures a [Runner].
type Option func(*Runner)

// WithLogger sets the logger. The default logs to stderr at Config.LogLevel.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// New returns a runner for cfg. A zero Seed is replaced by a time-based one;
// [Runner.Seed] reports the seed in use.
func New(cfg Config, opts ...Option) *Runner {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := &Runner{
		cfg:  cfg,
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.log == nil {
		r.log = newLogger(cfg.LogLevel)
	}

	return r
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}

	log.SetLevel(lvl)

	return log
}

// Config returns the runner's configuration.
func (r *Runner) Config() Config {
	return r.cfg
}

// Seed returns the seed of the random source.
func (r *Runner) Seed() int64 {
	return r.seed
}

// LocalRejects returns the number of discarded generation attempts so far.
func (r *Runner) LocalRejects() int {
	return r.localRejects
}

// Fill fills buf with random bytes.
func (r *Runner) Fill(buf []byte) {
	_, _ = r.rng.Read(buf)
}

// RejectLocal records a discarded generation attempt. It returns an error
// wrapping [ErrTooManyLocalRejects] once more than MaxLocalRejects attempts
// were discarded.
func (r *Runner) RejectLocal(reason string) error {
	r.localRejects++

	r.log.WithFields(logrus.Fields{"reason": reason, "rejects": r.localRejects}).Debug("local reject")

	if r.localRejects > r.cfg.MaxLocalRejects {
		return fmt.Errorf("%w (%d): last reason: %s", ErrTooManyLocalRejects, r.localRejects, reason)
	}

	return nil
}
