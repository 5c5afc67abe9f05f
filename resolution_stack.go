package simpledic

import (
	"github.com/a-peyrard/simpledic/set"
)

// ResolutionStack holds the types currently being created, innermost last.
type ResolutionStack struct {
	inFlight set.Set[TypeID]
	stack    []TypeID
}

// NewResolutionStack creates an empty stack.
func NewResolutionStack() *ResolutionStack {
	return &ResolutionStack{
		inFlight: set.New[TypeID](),
		stack:    make([]TypeID, 0),
	}
}

// Push marks the type as in flight, or fails with a CyclicDependencyError if it already is.
func (s *ResolutionStack) Push(typ TypeID) error {
	if s.inFlight.Contains(typ) {
		cycle := append(s.Items(), typ)
		return &CyclicDependencyError{Stack: cycle}
	}
	s.inFlight.Add(typ)
	s.stack = append(s.stack, typ)

	return nil
}

// Pop removes and returns the innermost type. The second result is false on an empty stack.
func (s *ResolutionStack) Pop() (TypeID, bool) {
	if len(s.stack) == 0 {
		return "", false
	}
	typ := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.inFlight.Remove(typ)

	return typ, true
}

// Contains reports if the type is in flight.
func (s *ResolutionStack) Contains(typ TypeID) bool {
	return s.inFlight.Contains(typ)
}

// Items returns a copy of the stack, outermost first.
func (s *ResolutionStack) Items() []TypeID {
	return append([]TypeID(nil), s.stack...)
}

// Len returns the depth of the stack.
func (s *ResolutionStack) Len() int {
	return len(s.stack)
}
