package runner

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
)

// Failure describes a property that failed, after shrinking.
type Failure struct {
	Test string
	Seed int64

	// Value is the minimal failing value.
	Value any

	// Input is the buffer prefix that constructs Value.
	Input []byte

	// Shrinks counts accepted simplifications.
	Shrinks int

	// Replayed is true when the failure came from a persisted regression.
	Replayed bool

	Err error
}

func (f *Failure) Error() string {
	origin := fmt.Sprintf("seed %d", f.Seed)
	if f.Replayed {
		origin = "persisted regression"
	}

	return fmt.Sprintf("property %s failed (%s, %d shrinks): %v\nminimal input: %s\nminimal value: %+v",
		f.Test, origin, f.Shrinks, f.Err, hex.EncodeToString(f.Input), f.Value)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Check runs property against values from s.
//
// Persisted regression inputs for test are replayed first, then
// Config.Cases random values are tried. The first failure is shrunk,
// persisted (when Config.Regressions is set) and returned as a [*Failure].
// Generation problems and rejection budgets return other errors.
func Check[V any](r *Runner, test string, s arbshrink.Strategy[V], property func(V) error) error {
	log := r.log.WithFields(logrus.Fields{"test": test, "seed": r.seed})
	guarded := func(v V) error { return callProperty(property, v) }

	var store *Store
	if r.cfg.Regressions != "" {
		store = NewStore(r.cfg.Regressions)
	}

	if store != nil {
		inputs, err := store.Load(test)
		if err != nil {
			log.WithError(err).Warn("cannot load regressions")
		}

		for _, input := range inputs {
			tree, err := arbshrink.NewTree(s.Constructor(), input)
			if err != nil {
				log.WithError(err).Warn("persisted input no longer constructs a value")

				continue
			}

			propErr := guarded(tree.Current())
			if propErr != nil && !errors.Is(propErr, ErrReject) {
				return fail(r, log, store, test, tree, guarded, propErr, true)
			}
		}
	}

	globalRejects := 0

	for passed := 0; passed < r.cfg.Cases; {
		tree, err := s.NewTree(r)
		if err != nil {
			return fmt.Errorf("generating input for %s: %w", test, err)
		}

		propErr := guarded(tree.Current())

		switch {
		case propErr == nil:
			passed++
		case errors.Is(propErr, ErrReject):
			globalRejects++
			log.WithError(propErr).Debug("global reject")

			if globalRejects > r.cfg.MaxGlobalRejects {
				return fmt.Errorf("%s: %w (%d)", test, ErrTooManyGlobalRejects, globalRejects)
			}
		default:
			return fail(r, log, store, test, tree, guarded, propErr, false)
		}
	}

	log.WithField("cases", r.cfg.Cases).Debug("property passed")

	return nil
}

// fail shrinks tree, persists the minimal input and builds the [*Failure].
func fail[V any](
	r *Runner,
	log logrus.FieldLogger,
	store *Store,
	test string,
	tree *arbshrink.Tree[V],
	property func(V) error,
	firstErr error,
	replayed bool,
) error {
	res := Shrink[V](tree, property, r.cfg.MaxShrinkIters)

	failErr := firstErr
	if res.Err != nil {
		failErr = res.Err
	}

	failure := &Failure{
		Test:     test,
		Seed:     r.seed,
		Value:    tree.Current(),
		Input:    tree.Input(),
		Shrinks:  res.Shrinks,
		Replayed: replayed,
		Err:      failErr,
	}

	log.WithFields(logrus.Fields{
		"shrinks":  res.Shrinks,
		"iters":    res.Iters,
		"input":    hex.EncodeToString(failure.Input),
		"replayed": replayed,
	}).WithError(failErr).Info("property failed")

	if store != nil {
		saveErr := store.Save(Entry{
			Test:  test,
			Input: hex.EncodeToString(failure.Input),
			Value: fmt.Sprintf("%+v", failure.Value),
		})
		if saveErr != nil {
			log.WithError(saveErr).Warn("cannot persist failing input")
		}
	}

	return failure
}

// callProperty runs property, turning a panic into an error wrapping
// [ErrPanicked].
func callProperty[V any](property func(V) error, v V) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, rec)
		}
	}()

	return property(v)
}
