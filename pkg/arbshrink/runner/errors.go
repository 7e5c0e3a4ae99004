package runner

import "errors"

// Error variables for runner operations.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config")

	// ErrReject is returned (or wrapped) by a property to discard the current
	// input without failing. Too many of them fail the run with
	// [ErrTooManyGlobalRejects].
	ErrReject = errors.New("input rejected by property")

	// ErrTooManyLocalRejects is returned by [Runner.RejectLocal] once more
	// than [Config.MaxLocalRejects] generation attempts were discarded.
	ErrTooManyLocalRejects = errors.New("too many local rejects")

	// ErrTooManyGlobalRejects is returned by [Check] once more than
	// [Config.MaxGlobalRejects] inputs were discarded by the property.
	ErrTooManyGlobalRejects = errors.New("too many global rejects")

	// ErrPanicked wraps a panic raised by a property.
	ErrPanicked = errors.New("property panicked")

	errRegressionsInvalid = errors.New("invalid regressions file")
)
