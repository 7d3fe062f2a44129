package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrReference     = errors.New("referenced record does not exist")
	ErrInvalid       = errors.New("value violates a constraint")
)

// ConstraintError describes a violated database constraint.
type ConstraintError struct {
	Err        error
	Constraint string
	Column     string
}

func (e *ConstraintError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s (%s): %s", e.Constraint, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Constraint, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}
