package simpledic

import (
	"fmt"
	"strings"

	"github.com/a-peyrard/simpledic/fn"
	"github.com/a-peyrard/simpledic/slices"
)

type (
	// Snapshot is a structured dump of the container state.
	Snapshot struct {
		Types     []TypeSnapshot     `yaml:"types"`
		Mappings  []Mapping          `yaml:"mappings,omitempty"`
		Factories []TypeID           `yaml:"factories,omitempty"`
		Instances []InstanceSnapshot `yaml:"instances,omitempty"`
		// Pending lists the instantiable types not created yet.
		Pending []TypeID `yaml:"pending,omitempty"`
	}

	TypeSnapshot struct {
		ID        TypeID   `yaml:"id"`
		Kind      string   `yaml:"kind"`
		GoType    string   `yaml:"goType"`
		Params    []string `yaml:"params,omitempty"`
		Ancestors []TypeID `yaml:"ancestors,omitempty"`
	}

	InstanceSnapshot struct {
		Type   TypeID `yaml:"type"`
		GoType string `yaml:"goType"`
	}
)

// Snapshot captures the described types, mappings, factories and cached instances.
func (c *Container) Snapshot() Snapshot {
	ids := c.registry.IDs()
	snapshot := Snapshot{
		Types:     slices.Map(ids, c.typeSnapshot),
		Mappings:  c.typeMaps.Mappings(),
		Factories: c.factories.Types(),
		Instances: slices.Map(c.instances.Types(), c.instanceSnapshot),
	}

	var cached fn.Predicate[TypeID] = func(id TypeID) bool {
		_, found := c.instances.Get(id)
		return found
	}
	snapshot.Pending = slices.Filter(slices.Filter(ids, c.instantiable), fn.Not(cached))

	return snapshot
}

func (c *Container) typeSnapshot(id TypeID) TypeSnapshot {
	d, _ := c.registry.Lookup(id)
	return TypeSnapshot{
		ID:        id,
		Kind:      d.Kind.String(),
		GoType:    d.GoType.String(),
		Params:    slices.Map(d.Params, Param.String),
		Ancestors: d.Ancestors,
	}
}

func (c *Container) instanceSnapshot(id TypeID) InstanceSnapshot {
	instance, _ := c.instances.Get(id)
	return InstanceSnapshot{Type: id, GoType: fmt.Sprintf("%T", instance)}
}

func (c *Container) instantiable(id TypeID) bool {
	d, found := c.registry.Lookup(id)
	return found && d.Instantiable()
}

// Describe returns a human-readable dump of the container state.
func (c *Container) Describe() string {
	snapshot := c.Snapshot()

	var b strings.Builder
	b.WriteString("Container:\n")
	b.WriteString("  Types:\n")
	b.WriteString(c.registry.Describe())
	b.WriteString("  Mappings:\n")
	for _, m := range snapshot.Mappings {
		b.WriteString(fmt.Sprintf("\t- %s -> %s\n", m.For, m.To))
	}
	b.WriteString("  Factories:\n")
	for _, typ := range snapshot.Factories {
		b.WriteString(fmt.Sprintf("\t- %s\n", typ))
	}
	b.WriteString("  Instances:\n")
	for _, instance := range snapshot.Instances {
		b.WriteString(fmt.Sprintf("\t- %s: %s\n", instance.Type, instance.GoType))
	}

	return b.String()
}
