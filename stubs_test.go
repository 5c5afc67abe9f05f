package simpledic

import (
	"errors"
	"testing"

	"github.com/a-peyrard/simpledic/internal/stubs"
	"github.com/stretchr/testify/require"
)

// namedComponent is satisfied by the stub classes but left out of the stub registry, tests
// describe it late.
type namedComponent interface {
	Name() string
}

var (
	namedComponentID    = IDOf[namedComponent]()
	parentInterfaceID   = IDOf[stubs.ParentInterface]()
	subClassInterfaceID = IDOf[stubs.SubClassInterface]()
	parentClassID       = IDOf[stubs.ParentClass]()
	subClassID          = IDOf[stubs.SubClass]()
)

func newStubRegistry(t *testing.T) *Registry {
	t.Helper()

	reg := NewRegistry()
	require.NoError(t, errors.Join(
		DescribeInterface[stubs.ParentInterface](reg),
		DescribeInterface[stubs.SubClassInterface](reg),
		DescribeConstructor(reg, stubs.NewParentClass),
		DescribeConstructor(reg, stubs.NewSubClass),
		DescribeConstructor(reg, stubs.NewAutowireClass, ParamNames("parentClass")),
		DescribeConstructor(reg, stubs.NewAutowireInterfaceClass, ParamNames("parentClass")),
		DescribeConstructor(reg, stubs.NewAutowireOptionalClass, ParamNames("parentClass", "subClass"), OptionalParams(1)),
		DescribeConstructor(reg, stubs.NewClassTakingInterfaceImplementations),
		DescribeConstructor(reg, stubs.NewClassWithProperties, ParamNames("val")),
		DescribeConstructor(reg, stubs.NewClassWithOptionalProperties, ParamNames("val"), OptionalParams(0)),
		DescribeConstructor(reg, stubs.NewClassWithUntypedProperty, ParamNames("val")),
		DescribeConstructor(reg, stubs.NewClassWithOptionalUntypedProperty, ParamNames("val"), OptionalParams(0)),
		DescribeStruct[stubs.FactoryClass](reg),
		DescribeConstructor(reg, stubs.NewCycleA),
		DescribeConstructor(reg, stubs.NewCycleB),
		DescribeConstructor(reg, stubs.NewCycleC),
		DescribeConstructor(reg, stubs.NewSelfDependent),
		DescribeConstructor(reg, stubs.NewOptionalCycleA, OptionalParams(0)),
		DescribeConstructor(reg, stubs.NewOptionalCycleB),
		DescribeConstructor(reg, stubs.NewFailing),
		DescribeConstructor(reg, stubs.NewPanicking),
	))
	return reg
}

func newStubContainer(t *testing.T) *Container {
	t.Helper()
	return New(WithRegistry(newStubRegistry(t)))
}
