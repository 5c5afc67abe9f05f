package simpledic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/a-peyrard/simpledic/slices"
)

var (
	// ErrTypeNotFound is returned when an identifier does not denote a described class or interface.
	ErrTypeNotFound = errors.New("type not found")
	// ErrCannotInferType is returned when a factory does not declare a usable result type.
	ErrCannotInferType = errors.New("cannot infer factory type")
	// ErrCannotInstantiateAbstractType is returned when resolution reaches an interface with no mapping,
	// no factory and no cached instance.
	ErrCannotInstantiateAbstractType = errors.New("cannot instantiate abstract type")
	// ErrMissingParameterType is returned when a required parameter has no usable declared type.
	ErrMissingParameterType = errors.New("missing parameter type")
	// ErrArgResolution is returned when the dependency of a required parameter could not be resolved.
	ErrArgResolution = errors.New("argument resolution failed")
	// ErrFactoryTypeMismatch is returned when a factory produces a value not assignable to its type.
	ErrFactoryTypeMismatch = errors.New("factory type mismatch")
	// ErrCyclicDependency is returned when a type is requested while it is already being built.
	ErrCyclicDependency = errors.New("cyclic dependency")
	// ErrInternalConsistency flags a broken resolution stack, it should never happen.
	ErrInternalConsistency = errors.New("internal consistency error")
	// ErrNotFound is returned by the Locator when no entry exists for an identifier.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateType is returned when a type is described twice in the same registry.
	ErrDuplicateType = errors.New("duplicate type")
)

type (
	// ContainerError wraps any failure happening while creating an instance of Type.
	//
	// Nested creations produce a chain of ContainerError, from the requested type down to the
	// failing dependency.
	ContainerError struct {
		Type  TypeID
		Cause error
	}

	// CyclicDependencyError lists the resolution stack that led back to an in-flight type.
	CyclicDependencyError struct {
		Stack []TypeID
	}

	// ArgResolutionError is returned when a required parameter could not be resolved.
	ArgResolutionError struct {
		Param Param
		Cause error
	}
)

func (e *ContainerError) Error() string {
	return fmt.Sprintf("failed to create instance of %s:\n\t%v", e.Type, e.Cause)
}

func (e *ContainerError) Unwrap() error {
	return e.Cause
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("%s:\n%s", ErrCyclicDependency, formatCycle(e.Stack))
}

func (e *CyclicDependencyError) Is(target error) bool {
	return target == ErrCyclicDependency
}

func (e *ArgResolutionError) Error() string {
	return fmt.Sprintf("%s for parameter %s:\n\t%v", ErrArgResolution, e.Param, e.Cause)
}

func (e *ArgResolutionError) Is(target error) bool {
	return target == ErrArgResolution
}

func (e *ArgResolutionError) Unwrap() error {
	return e.Cause
}

func formatCycle(cycle []TypeID) string {
	var b strings.Builder
	for i, line := range slices.Map(cycle, TypeID.String) {
		b.WriteString(strings.Repeat("\t", i))
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
