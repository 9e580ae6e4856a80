package filters

import (
	"reflect"

	"github.com/project-kessel/filterkit/internal/di"
)

// Collection is an ordered list of filters.
// Insertion order is kept and is the tie-breaker when a Provider sorts by order.
type Collection struct {
	items []Metadata
}

// NewCollection creates an empty collection
func NewCollection() *Collection {
	return &Collection{}
}

// Len returns the number of filters
func (c *Collection) Len() int {
	return len(c.items)
}

// Items returns a copy of the filters in insertion order
func (c *Collection) Items() []Metadata {
	items := make([]Metadata, len(c.items))
	copy(items, c.items)
	return items
}

// Append adds an existing filter instance
func (c *Collection) Append(m Metadata) error {
	if m == nil {
		return missingArgument("filter")
	}
	c.items = append(c.items, m)
	return nil
}

// Add registers filterType and returns the element that was appended.
//
// A Factory type that is default constructible (see di.IsDefaultConstructible)
// is instantiated immediately and stored as-is. Every other filter type is
// wrapped in a TypeFilter and activated through the resolver when needed.
func (c *Collection) Add(filterType reflect.Type) (Metadata, error) {
	m, err := newTypeItem(filterType)
	if err != nil {
		return nil, err
	}
	c.items = append(c.items, m)
	return m, nil
}

// AddWithOrder is Add followed by setting the returned element's order.
// A default constructible factory without a SetOrder method is kept behind a
// TypeFilterFactory instead of being unwrapped, so the element reports order.
func (c *Collection) AddWithOrder(filterType reflect.Type, order int) (Metadata, error) {
	m, err := newTypeItem(filterType)
	if err != nil {
		return nil, err
	}
	if !SetOrder(m, order) {
		f, err := NewTypeFilterFactory(filterType)
		if err != nil {
			return nil, err
		}
		f.SetOrder(order)
		m = f
	}
	c.items = append(c.items, m)
	return m, nil
}

// AddFactory registers t behind a TypeFilterFactory, which
// activates it once through the resolver and delegates to that instance.
func (c *Collection) AddFactory(t reflect.Type) (*TypeFilterFactory, error) {
	f, err := newFactoryItem(t)
	if err != nil {
		return nil, err
	}
	c.items = append(c.items, f)
	return f, nil
}

// AddFactoryWithOrder is AddFactory with an explicit order
func (c *Collection) AddFactoryWithOrder(t reflect.Type, order int) (*TypeFilterFactory, error) {
	f, err := newFactoryItem(t)
	if err != nil {
		return nil, err
	}
	f.SetOrder(order)
	c.items = append(c.items, f)
	return f, nil
}

// AddService registers filterType as a ServiceFilter resolved from the
// resolver's registrations, and returns it.
func (c *Collection) AddService(filterType reflect.Type) (Metadata, error) {
	f, err := newServiceItem(filterType)
	if err != nil {
		return nil, err
	}
	c.items = append(c.items, f)
	return f, nil
}

// AddServiceWithOrder is AddService with an explicit order
func (c *Collection) AddServiceWithOrder(filterType reflect.Type, order int) (Metadata, error) {
	f, err := newServiceItem(filterType)
	if err != nil {
		return nil, err
	}
	f.SetOrder(order)
	c.items = append(c.items, f)
	return f, nil
}

// AddType is Collection.Add for T
func AddType[T Metadata](c *Collection) (Metadata, error) {
	return c.Add(reflect.TypeFor[T]())
}

// AddTypeWithOrder is Collection.AddWithOrder for T
func AddTypeWithOrder[T Metadata](c *Collection, order int) (Metadata, error) {
	return c.AddWithOrder(reflect.TypeFor[T](), order)
}

// AddFactoryType is Collection.AddFactory for T
func AddFactoryType[T Factory](c *Collection) (*TypeFilterFactory, error) {
	return c.AddFactory(reflect.TypeFor[T]())
}

// AddServiceType is Collection.AddService for T
func AddServiceType[T Metadata](c *Collection) (Metadata, error) {
	return c.AddService(reflect.TypeFor[T]())
}

// AddServiceTypeWithOrder is Collection.AddServiceWithOrder for T
func AddServiceTypeWithOrder[T Metadata](c *Collection, order int) (Metadata, error) {
	return c.AddServiceWithOrder(reflect.TypeFor[T](), order)
}

func newTypeItem(filterType reflect.Type) (Metadata, error) {
	if err := checkFilterType(filterType); err != nil {
		return nil, err
	}

	if filterType.Implements(factoryType) && di.IsDefaultConstructible(filterType) {
		return di.New(filterType).(Metadata), nil
	}

	return NewTypeFilter(filterType)
}

func newFactoryItem(t reflect.Type) (*TypeFilterFactory, error) {
	if t == nil {
		return nil, missingArgument("factoryType")
	}
	if !t.Implements(factoryType) {
		return nil, typeMismatch("factoryType", t, factoryType)
	}
	return NewTypeFilterFactory(t)
}

func newServiceItem(filterType reflect.Type) (*ServiceFilter, error) {
	if err := checkFilterType(filterType); err != nil {
		return nil, err
	}
	return NewServiceFilter(filterType)
}

func checkFilterType(filterType reflect.Type) error {
	if filterType == nil {
		return missingArgument("filterType")
	}
	if !filterType.Implements(metadataType) {
		return typeMismatch("filterType", filterType, metadataType)
	}
	return nil
}
