// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eff

import (
	"errors"
	"fmt"
)

// ErrUnhandled is returned by a handler asked to dispatch an operation
// outside its vocabulary.
var ErrUnhandled = errors.New("eff: unhandled operation")

// UnhandledError names the operation a handler could not dispatch.
// It matches [ErrUnhandled] under errors.Is.
type UnhandledError struct {
	Op Operation
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("%v %T", ErrUnhandled, e.Op)
}

func (e *UnhandledError) Is(target error) bool { return target == ErrUnhandled }

// Unhandled returns the error a handler answers for an operation outside
// its vocabulary.
func Unhandled(op Operation) error {
	return &UnhandledError{Op: op}
}

// DispatchError records a vocabulary-level failure: the real effect of
// Op failed with Err and the interpretation stopped there.
type DispatchError struct {
	Op  Operation
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("eff: dispatch %T: %v", e.Op, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// ProgramError is an unrecovered panic raised by a direct-style program
// running under [Build].
type ProgramError struct {
	// Value is the value passed to panic.
	Value any

	// Stack is the program's stack at the time of the panic.
	Stack []byte
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("eff: direct-style program panicked: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *ProgramError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
