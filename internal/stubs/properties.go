package stubs

type (
	ClassWithProperties struct {
		val string
	}

	ClassWithOptionalProperties struct {
		val string
	}

	ClassWithUntypedProperty struct {
		val any
	}

	ClassWithOptionalUntypedProperty struct {
		val any
	}

	FactoryClass struct{}
)

func NewClassWithProperties(val string) *ClassWithProperties {
	return &ClassWithProperties{val: val}
}

func (c *ClassWithProperties) Val() string {
	return c.val
}

// NewClassWithOptionalProperties takes an optional val.
func NewClassWithOptionalProperties(val string) *ClassWithOptionalProperties {
	return &ClassWithOptionalProperties{val: val}
}

func (c *ClassWithOptionalProperties) Val() string {
	return c.val
}

func NewClassWithUntypedProperty(val any) *ClassWithUntypedProperty {
	return &ClassWithUntypedProperty{val: val}
}

func (c *ClassWithUntypedProperty) Val() any {
	return c.val
}

// NewClassWithOptionalUntypedProperty takes an optional val.
func NewClassWithOptionalUntypedProperty(val any) *ClassWithOptionalUntypedProperty {
	return &ClassWithOptionalUntypedProperty{val: val}
}

func (c *ClassWithOptionalUntypedProperty) Val() any {
	return c.val
}

func (f *FactoryClass) GetClass() *ClassWithProperties {
	return NewClassWithProperties("factory-val")
}

// NewFactoryClassProduct is the package level flavour of FactoryClass.GetClass.
func NewFactoryClassProduct() *ClassWithProperties {
	return NewClassWithProperties("factory-val")
}
