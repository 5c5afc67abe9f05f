package simpledic

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/simpledic/reflectutils"
	"github.com/a-peyrard/simpledic/set"
)

// Kind tells if a described type can be instantiated.
type Kind int

const (
	// KindConcrete is a class: it has an instantiation primitive.
	KindConcrete Kind = iota
	// KindAbstract is an interface: it can only be obtained through a mapping, a factory or a cached instance.
	KindAbstract
)

type (
	// Param describes one constructor (or factory) parameter.
	Param struct {
		Name string
		// Type is empty when the parameter has no usable declared type.
		Type TypeID
		// Scalar is set when the declared type is neither a class nor an interface.
		Scalar   bool
		Optional bool
	}

	// Constructor is the instantiation primitive of a concrete type. It receives the resolved
	// arguments, possibly fewer than the declared parameters when trailing optional ones were omitted.
	Constructor func(args []any) (any, error)

	// Descriptor is what the container knows about a type: its kind, its constructor parameters,
	// and its declared ancestors.
	Descriptor struct {
		ID     TypeID
		GoType reflect.Type
		Kind   Kind
		Params []Param
		// Ancestors are the declared parents and interfaces. Embedded structs and implemented
		// Go interfaces do not need to be declared.
		Ancestors []TypeID
		Construct Constructor
	}

	// Registry is the explicit type-introspection facility: it maps type identifiers to descriptors,
	// and answers the subtype questions the container asks.
	//
	// A Registry is not safe for concurrent mutation.
	Registry struct {
		descriptors map[TypeID]*Descriptor
		order       []TypeID
		byGoType    map[reflect.Type]TypeID

		// bumped by every registration, lookup caches built on the registry compare against it
		generation uint64
	}
)

func (p Param) String() string {
	switch {
	case p.Type == "":
		return fmt.Sprintf("%s <untyped>", p.Name)
	case p.Scalar:
		return fmt.Sprintf("%s %s (scalar)", p.Name, p.Type)
	default:
		return fmt.Sprintf("%s %s", p.Name, p.Type)
	}
}

func (k Kind) String() string {
	if k == KindAbstract {
		return "abstract"
	}
	return "concrete"
}

// Instantiable reports if the type can be constructed by autowiring.
func (d *Descriptor) Instantiable() bool {
	return d.Kind == KindConcrete && d.Construct != nil
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[TypeID]*Descriptor),
		byGoType:    make(map[reflect.Type]TypeID),
	}
}

// Register adds a descriptor. Descriptors are immutable once registered.
func (r *Registry) Register(d *Descriptor) error {
	if d == nil || d.ID == "" {
		return errors.New("descriptor must have an identifier")
	}
	if d.GoType == nil {
		return fmt.Errorf("descriptor %s must have a Go type", d.ID)
	}
	if d.Kind == KindConcrete && d.Construct == nil {
		return fmt.Errorf("concrete descriptor %s must have a constructor", d.ID)
	}
	if _, exists := r.descriptors[d.ID]; exists {
		return fmt.Errorf("%w: %s is already described", ErrDuplicateType, d.ID)
	}

	r.descriptors[d.ID] = d
	r.order = append(r.order, d.ID)
	if _, taken := r.byGoType[d.GoType]; !taken {
		r.byGoType[d.GoType] = d.ID
	}
	r.generation++
	return nil
}

// Generation changes every time a descriptor is registered.
func (r *Registry) Generation() uint64 {
	return r.generation
}

// Exists reports if the identifier denotes a described class or interface.
func (r *Registry) Exists(id TypeID) bool {
	_, found := r.descriptors[id]
	return found
}

// Lookup returns the descriptor of a type.
func (r *Registry) Lookup(id TypeID) (*Descriptor, bool) {
	d, found := r.descriptors[id]
	return d, found
}

// Get returns the descriptor of a type, or ErrTypeNotFound.
func (r *Registry) Get(id TypeID) (*Descriptor, error) {
	d, found := r.descriptors[id]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, id)
	}
	return d, nil
}

// IDs lists the described identifiers in registration order.
func (r *Registry) IDs() []TypeID {
	return append([]TypeID(nil), r.order...)
}

// IDFor finds the identifier describing a Go type.
func (r *Registry) IDFor(typ reflect.Type) (TypeID, bool) {
	if typ == nil {
		return "", false
	}
	if id, found := r.byGoType[typ]; found {
		return id, true
	}
	id := TypeIDOf(typ)
	if d, found := r.descriptors[id]; found && reflectutils.DerefType(d.GoType) == reflectutils.DerefType(typ) {
		return id, true
	}
	return "", false
}

// IsSubtype reports if sub satisfies the contract of super. The relation is reflexive and
// transitive, and combines declared ancestors, struct embedding and Go interface implementation.
func (r *Registry) IsSubtype(sub, super TypeID) bool {
	return r.isSubtype(sub, super, set.New[TypeID]())
}

func (r *Registry) isSubtype(sub, super TypeID, visited set.Set[TypeID]) bool {
	if sub == super {
		return true
	}
	if !visited.Add(sub) {
		return false
	}
	subD, found := r.descriptors[sub]
	if !found {
		return false
	}
	superD, found := r.descriptors[super]
	if !found {
		return false
	}

	if superD.GoType.Kind() == reflect.Interface && subD.GoType.Implements(superD.GoType) {
		return true
	}
	for _, ancestor := range subD.Ancestors {
		if r.isSubtype(ancestor, super, visited) {
			return true
		}
	}
	for _, embedded := range reflectutils.EmbeddedStructs(subD.GoType) {
		embeddedID, found := r.IDFor(embedded)
		if !found {
			embeddedID = TypeIDOf(embedded)
		}
		if r.isSubtype(embeddedID, super, visited) {
			return true
		}
	}

	return false
}

// IsInstanceOf reports if a value can be used where id is expected. A nil value, typed or not,
// is an instance of nothing.
func (r *Registry) IsInstanceOf(value any, id TypeID) bool {
	if isNil(value) {
		return false
	}
	superD, found := r.descriptors[id]
	if !found {
		return false
	}
	if sub, found := r.IDFor(reflect.TypeOf(value)); found && r.IsSubtype(sub, id) {
		return true
	}
	_, ok := coerce(reflect.ValueOf(value), superD.GoType)
	return ok
}

// Describe returns a human-readable listing of the registry.
func (r *Registry) Describe() string {
	var b strings.Builder
	for _, id := range r.order {
		d := r.descriptors[id]
		b.WriteString(fmt.Sprintf("\t- %s (%s, go type %s)\n", id, d.Kind, d.GoType))
		for _, p := range d.Params {
			optional := ""
			if p.Optional {
				optional = " [optional]"
			}
			b.WriteString(fmt.Sprintf("\t\tparam: %s%s\n", p, optional))
		}
		for _, a := range d.Ancestors {
			b.WriteString(fmt.Sprintf("\t\tancestor: %s\n", a))
		}
	}
	return b.String()
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
