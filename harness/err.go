package harness

import (
	"errors"

	"github.com/ezrec/enginetb/translate"
)

var f = translate.From

var (
	ErrBaseAlign    = errors.New(f("base address is not word aligned"))
	ErrWindowWords  = errors.New(f("window must be larger than its implemented words"))
	ErrEmptyWindow  = errors.New(f("window has no words"))
	ErrPollBudget   = errors.New(f("poll budget must be >= 0"))
	ErrNotCompleted = errors.New(f("run has not completed"))
)

// ErrConfigName is returned for a configuration global with no matching
// field.
type ErrConfigName string

func (err ErrConfigName) Error() string {
	return f("unknown configuration value %q", string(err))
}

// ErrConfigValue is returned for a configuration global of the wrong type
// or range.
type ErrConfigValue struct {
	Name  string
	Value string
}

func (err *ErrConfigValue) Error() string {
	return f("%v: invalid value %v", err.Name, err.Value)
}

// ErrConfig wraps a configuration load failure with its source name.
type ErrConfig struct {
	Name string
	Err  error
}

func (err *ErrConfig) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

// ErrStage records the harness state an infrastructure fault occurred in.
type ErrStage struct {
	State State
	Err   error
}

func (err *ErrStage) Error() string {
	return f("%v: %v", err.State, err.Err)
}

func (err *ErrStage) Unwrap() error {
	return err.Err
}
