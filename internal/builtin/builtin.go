// Package builtin provides the filters registered by default.
package builtin

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/project-kessel/filterkit/internal/di"
	"github.com/project-kessel/filterkit/internal/filters"
	"github.com/project-kessel/filterkit/internal/registry"
)

// Registered names
const (
	RequestIDName     = "request_id"
	VersionHeaderName = "version_header"
	NoopName          = "noop"
)

// IDSource generates request identifiers
type IDSource interface {
	NewID() string
}

// UUIDSource generates random (version 4) UUIDs
type UUIDSource struct{}

// NewID implements IDSource
func (UUIDSource) NewID() string {
	return uuid.NewString()
}

// BuildInfo describes the running build
type BuildInfo struct {
	Version string
}

// RequestIDFilter carries the identifier assigned to a request
type RequestIDFilter struct {
	filters.Marker
	Header string
	ID     string
}

// RequestIDFactory assigns a fresh identifier per created filter.
// It needs an IDSource, so a collection keeps it behind a TypeFilter.
type RequestIDFactory struct {
	filters.Marker
	IDs IDSource `inject:""`
}

// CreateInstance implements filters.Factory
func (f *RequestIDFactory) CreateInstance(di.Resolver) (filters.Metadata, error) {
	if f.IDs == nil {
		return nil, fmt.Errorf("request id factory has no id source")
	}
	return &RequestIDFilter{
		Header: "X-Request-Id",
		ID:     f.IDs.NewID(),
	}, nil
}

// IsReusable implements filters.Factory. Each request needs its own id.
func (f *RequestIDFactory) IsReusable() bool {
	return false
}

// VersionHeaderFilter stamps responses with the build version.
// It is registered as a service.
type VersionHeaderFilter struct {
	filters.Marker
	Header  string
	Version string
}

// Order implements filters.Ordered; version stamping runs late
func (f *VersionHeaderFilter) Order() int {
	return 100
}

// NewVersionHeaderFilter creates the filter from build info
func NewVersionHeaderFilter(info *BuildInfo) *VersionHeaderFilter {
	return &VersionHeaderFilter{
		Header:  "X-Version",
		Version: info.Version,
	}
}

// NoopFactory contributes no filter. A collection instantiates it directly.
type NoopFactory struct {
	filters.Marker
}

// CreateInstance implements filters.Factory
func (NoopFactory) CreateInstance(di.Resolver) (filters.Metadata, error) {
	return nil, nil
}

// IsReusable implements filters.Factory
func (NoopFactory) IsReusable() bool {
	return true
}

// RegisterTypes adds the builtin filters to types
func RegisterTypes(types *registry.Types) error {
	if err := registry.Register[*RequestIDFactory](types, RequestIDName); err != nil {
		return err
	}
	if err := registry.Register[*VersionHeaderFilter](types, VersionHeaderName); err != nil {
		return err
	}
	return registry.Register[NoopFactory](types, NoopName)
}

// Provide registers the services the builtin filters depend on
func Provide(c *di.Container, info BuildInfo) error {
	if err := di.InstanceAs[IDSource](c, UUIDSource{}); err != nil {
		return fmt.Errorf("failed to register id source: %w", err)
	}
	if err := c.Instance(&info); err != nil {
		return fmt.Errorf("failed to register build info: %w", err)
	}
	if err := c.Provide(NewVersionHeaderFilter); err != nil {
		return fmt.Errorf("failed to register version header filter: %w", err)
	}
	return nil
}
