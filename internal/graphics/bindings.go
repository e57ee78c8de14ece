package graphics

import "fmt"

// Binding is a uniform block name resolved to a device slot.
type Binding struct {
	Name string
	Slot uint32
}

// Bindings hands out uniform block slots by name. A name keeps the same
// slot for every program it is resolved against.
type Bindings struct {
	device Device
	slots  map[string]uint32
	next   uint32
}

func NewBindings(device Device) *Bindings {
	return &Bindings{
		device: device,
		slots:  make(map[string]uint32),
	}
}

// Resolve assigns the named block of p to its slot, allocating one on
// first use.
func (b *Bindings) Resolve(p Program, name string) (Binding, error) {
	slot, ok := b.slots[name]
	if !ok {
		slot = b.next
	}
	if err := b.device.AssignUniformBlock(p, name, slot); err != nil {
		return Binding{}, fmt.Errorf("resolve binding %q: %w", name, err)
	}
	if !ok {
		b.slots[name] = slot
		b.next++
	}
	return Binding{Name: name, Slot: slot}, nil
}

// Lookup returns the binding for a name that was already resolved.
func (b *Bindings) Lookup(name string) (Binding, bool) {
	slot, ok := b.slots[name]
	if !ok {
		return Binding{}, false
	}
	return Binding{Name: name, Slot: slot}, true
}
