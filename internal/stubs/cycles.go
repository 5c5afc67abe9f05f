package stubs

import "errors"

type (
	CycleA struct {
		B *CycleB
	}

	CycleB struct {
		C *CycleC
	}

	CycleC struct {
		A *CycleA
	}

	SelfDependent struct {
		Self *SelfDependent
	}

	OptionalCycleA struct {
		B *OptionalCycleB
	}

	OptionalCycleB struct {
		A *OptionalCycleA
	}

	Failing struct{}

	Panicking struct{}
)

var ErrFailing = errors.New("failing constructor")

func NewCycleA(b *CycleB) *CycleA {
	return &CycleA{B: b}
}

func NewCycleB(c *CycleC) *CycleB {
	return &CycleB{C: c}
}

func NewCycleC(a *CycleA) *CycleC {
	return &CycleC{A: a}
}

func NewSelfDependent(self *SelfDependent) *SelfDependent {
	return &SelfDependent{Self: self}
}

// NewOptionalCycleA takes an optional b.
func NewOptionalCycleA(b *OptionalCycleB) *OptionalCycleA {
	return &OptionalCycleA{B: b}
}

func NewOptionalCycleB(a *OptionalCycleA) *OptionalCycleB {
	return &OptionalCycleB{A: a}
}

func NewFailing() (*Failing, error) {
	return nil, ErrFailing
}

func NewPanicking() *Panicking {
	panic("boom")
}
