// Package filters contains the filter descriptors and the collection that
// registers them.
//
// A filter is any value implementing Metadata. A pipeline consuming a
// Collection turns its items into concrete filters with a Provider: plain
// filters are used as-is, factories are asked for an instance.
package filters

import (
	"reflect"

	"github.com/project-kessel/filterkit/internal/di"
)

// Metadata marks a value as a filter.
// Embed Marker to satisfy it.
type Metadata interface {
	FilterMetadata()
}

// Marker implements Metadata
type Marker struct{}

// FilterMetadata implements Metadata
func (Marker) FilterMetadata() {}

// Factory produces filter instances when a resolver is available
type Factory interface {
	Metadata

	// CreateInstance returns the filter for this factory.
	// A nil filter with a nil error means the factory contributes nothing.
	CreateInstance(r di.Resolver) (Metadata, error)

	// IsReusable reports whether the produced filter may be reused across requests
	IsReusable() bool
}

// Ordered is a filter with an explicit execution order.
// Lower values run first; filters without an order sort as 0.
type Ordered interface {
	Metadata
	Order() int
}

// orderSetter is implemented by descriptors whose order can be changed after construction
type orderSetter interface {
	SetOrder(order int)
}

// reusableSetter is implemented by descriptors whose reusability can be changed
type reusableSetter interface {
	SetReusable(reusable bool)
}

var (
	metadataType = reflect.TypeFor[Metadata]()
	factoryType  = reflect.TypeFor[Factory]()
)

// OrderOf returns m's order, or 0 when m is not Ordered
func OrderOf(m Metadata) int {
	if o, ok := m.(Ordered); ok {
		return o.Order()
	}
	return 0
}

// SetOrder sets m's order when m supports it, reporting whether it did
func SetOrder(m Metadata, order int) bool {
	s, ok := m.(orderSetter)
	if ok {
		s.SetOrder(order)
	}
	return ok
}

// SetReusable sets m's reusability when m supports it, reporting whether it did
func SetReusable(m Metadata, reusable bool) bool {
	s, ok := m.(reusableSetter)
	if ok {
		s.SetReusable(reusable)
	}
	return ok
}
