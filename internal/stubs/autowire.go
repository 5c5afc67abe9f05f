package stubs

type (
	AutowireClass struct {
		parentClass *ParentClass
	}

	AutowireInterfaceClass struct {
		object ParentInterface
	}

	AutowireOptionalClass struct {
		parentClass ParentInterface
		subClass    SubClassInterface
	}

	// ClassTakingInterfaceImplementations implements ParentInterface, and needs one itself.
	ClassTakingInterfaceImplementations struct {
		parentClass *ParentClass
	}
)

func NewAutowireClass(parentClass *ParentClass) *AutowireClass {
	return &AutowireClass{parentClass: parentClass}
}

func (a *AutowireClass) ParentClass() *ParentClass {
	return a.parentClass
}

func NewAutowireInterfaceClass(parentClass ParentInterface) *AutowireInterfaceClass {
	return &AutowireInterfaceClass{object: parentClass}
}

func (a *AutowireInterfaceClass) ParentClass() ParentInterface {
	return a.object
}

// NewAutowireOptionalClass takes an optional subClass.
func NewAutowireOptionalClass(parentClass ParentInterface, subClass SubClassInterface) *AutowireOptionalClass {
	return &AutowireOptionalClass{parentClass: parentClass, subClass: subClass}
}

func (a *AutowireOptionalClass) ParentClass() ParentInterface {
	return a.parentClass
}

func (a *AutowireOptionalClass) SubClass() SubClassInterface {
	return a.subClass
}

func NewClassTakingInterfaceImplementations(parentClass *ParentClass) *ClassTakingInterfaceImplementations {
	return &ClassTakingInterfaceImplementations{parentClass: parentClass}
}

func (c *ClassTakingInterfaceImplementations) Name() string {
	return "taking-" + c.parentClass.Name()
}

func (c *ClassTakingInterfaceImplementations) ParentClass() *ParentClass {
	return c.parentClass
}
