package filters

import (
	"reflect"

	"github.com/project-kessel/filterkit/internal/di"
)

// ServiceFilter is a descriptor that looks ServiceType up in the resolver's
// registrations. Unlike TypeFilter, the type must have been registered.
type ServiceFilter struct {
	serviceType reflect.Type
	order       int
	reusable    bool
}

// NewServiceFilter creates a descriptor for t, which must implement Metadata
func NewServiceFilter(t reflect.Type) (*ServiceFilter, error) {
	if t == nil {
		return nil, missingArgument("type")
	}
	if !t.Implements(metadataType) {
		return nil, typeMismatch("type", t, metadataType)
	}

	return &ServiceFilter{
		serviceType: t,
	}, nil
}

// FilterMetadata implements Metadata
func (f *ServiceFilter) FilterMetadata() {}

// ServiceType returns the registered type this descriptor resolves
func (f *ServiceFilter) ServiceType() reflect.Type {
	return f.serviceType
}

// Order implements Ordered
func (f *ServiceFilter) Order() int {
	return f.order
}

// SetOrder sets the execution order
func (f *ServiceFilter) SetOrder(order int) {
	f.order = order
}

// IsReusable implements Factory
func (f *ServiceFilter) IsReusable() bool {
	return f.reusable
}

// SetReusable sets whether produced filters may be reused
func (f *ServiceFilter) SetReusable(reusable bool) {
	f.reusable = reusable
}

// CreateInstance implements Factory
func (f *ServiceFilter) CreateInstance(r di.Resolver) (Metadata, error) {
	if r == nil {
		return nil, missingArgument("resolver")
	}

	v, err := r.Resolve(f.serviceType)
	if err != nil {
		return nil, err
	}

	return unwrap(r, f.serviceType, v)
}
