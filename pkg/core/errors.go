package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrInvalidArgument marks errors caused by bad user input. The CLI maps it to exit code 2.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrInvalidBatchSize   = InvalidArgument("batch-size must be > 0")
	ErrInvalidMaxCommits  = InvalidArgument("max-commits must be >= 0")
	ErrConflictingSubsets = InvalidArgument("--only-untracked and --only-tracked are mutually exclusive")

	// ErrStagedOutsideRoot is returned when the index holds changes that do not belong to the content root.
	ErrStagedOutsideRoot = errors.New("staged changes outside the content root")

	// ErrNotARepository is returned when the repository root cannot be resolved.
	ErrNotARepository = errors.New("unable to resolve git repo root")
)

type argumentError struct {
	msg string
}

func (e *argumentError) Error() string { return e.msg }

func (e *argumentError) Unwrap() error { return ErrInvalidArgument }

// InvalidArgument returns an error that matches ErrInvalidArgument.
func InvalidArgument(format string, args ...any) error {
	return &argumentError{msg: fmt.Sprintf(format, args...)}
}
