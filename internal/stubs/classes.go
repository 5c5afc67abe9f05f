// Package stubs holds the component types used by the container tests.
package stubs

type (
	ParentInterface interface {
		Name() string
	}

	SubClassInterface interface {
		ParentInterface
		IsSub() bool
	}

	ParentClass struct {
		name string
	}

	// SubClass extends ParentClass.
	SubClass struct {
		ParentClass
	}
)

func NewParentClass() *ParentClass {
	return &ParentClass{name: "parent"}
}

func (p *ParentClass) Name() string {
	return p.name
}

func NewSubClass() *SubClass {
	return &SubClass{ParentClass: ParentClass{name: "sub"}}
}

func (s *SubClass) IsSub() bool {
	return true
}
