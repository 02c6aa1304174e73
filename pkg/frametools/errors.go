package frametools

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrNameCollision = errors.New("name collision")
	ErrAssertion     = errors.New("assertion failed")
	ErrConfiguration = errors.New("invalid configuration")
)

// NameCollisionError is returned when a column to be created already exists.
type NameCollisionError struct {
	Column string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("column name %q already exists", e.Column)
}

func (e *NameCollisionError) Is(target error) bool { return target == ErrNameCollision }

// AssertionError is returned by Merge when not every row has the expected
// status. Distribution holds what the merge actually produced.
type AssertionError struct {
	Expected     Status
	Distribution Distribution
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("merge assertion is false: expected all rows %s, got %d rows:\n%s",
		e.Expected, e.Distribution.Total, e.Distribution)
}

func (e *AssertionError) Is(target error) bool { return target == ErrAssertion }

// InvariantError reports an internal shape check that did not hold.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: invariant violated: %s", e.Op, e.Detail)
}

func (e *InvariantError) Is(target error) bool { return target == ErrAssertion }

// ConfigurationError reports arguments that do not fit together.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }
