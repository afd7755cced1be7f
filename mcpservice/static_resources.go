package mcpservice

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrInvalidResourceURI is returned when a resource URI is not absolute.
var ErrInvalidResourceURI = errors.New("resource uri must be absolute")

// StaticResource is a resource descriptor with fixed text contents.
type StaticResource struct {
	Descriptor *mcp.Resource
	Text       string
}

// ResourceOption configures a StaticResource built by TextResource.
type ResourceOption func(*mcp.Resource)

// WithName sets the programmatic resource name. Defaults to the URI.
func WithName(name string) ResourceOption {
	return func(r *mcp.Resource) { r.Name = name }
}

// WithDescription sets the resource description.
func WithDescription(desc string) ResourceOption {
	return func(r *mcp.Resource) { r.Description = desc }
}

// WithMimeType sets the resource MIME type.
func WithMimeType(mime string) ResourceOption {
	return func(r *mcp.Resource) { r.MIMEType = mime }
}

// TextResource builds a StaticResource serving text at uri.
func TextResource(uri, text string, opts ...ResourceOption) StaticResource {
	r := &mcp.Resource{URI: uri, Name: uri}
	for _, opt := range opts {
		opt(r)
	}
	return StaticResource{Descriptor: r, Text: text}
}

// ReadObserver is notified after a resource was served to a client.
type ReadObserver func(ctx context.Context, uri string)

// ResourcesContainer owns a mutable, threadsafe set of static resources and
// their contents. Reads always serve the contents current at read time.
type ResourcesContainer struct {
	mu        sync.RWMutex
	resources []StaticResource
	index     map[string]int // uri -> position in resources
	observers []ReadObserver
	bound     *mcp.Server
}

// NewResourcesContainer constructs a ResourcesContainer holding defs. It
// panics on a resource with a relative URI; use UpsertResource to handle that
// case as an error.
func NewResourcesContainer(defs ...StaticResource) *ResourcesContainer {
	rc := &ResourcesContainer{index: make(map[string]int)}
	for _, d := range defs {
		if err := rc.UpsertResource(d); err != nil {
			panic(err)
		}
	}
	return rc
}

// OnRead registers fn to run after every successful read.
func (rc *ResourcesContainer) OnRead(fn ReadObserver) {
	rc.mu.Lock()
	rc.observers = append(rc.observers, fn)
	rc.mu.Unlock()
}

// UpsertResource adds def or replaces the resource with the same URI.
func (rc *ResourcesContainer) UpsertResource(def StaticResource) error {
	if def.Descriptor == nil {
		return fmt.Errorf("%w: missing descriptor", ErrInvalidResourceURI)
	}
	u, err := url.Parse(def.Descriptor.URI)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("%w: %q", ErrInvalidResourceURI, def.Descriptor.URI)
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	uri := def.Descriptor.URI
	if i, ok := rc.index[uri]; ok {
		rc.resources[i] = def
	} else {
		rc.index[uri] = len(rc.resources)
		rc.resources = append(rc.resources, def)
	}
	if rc.bound != nil {
		rc.bound.AddResource(def.Descriptor, rc.read)
	}
	return nil
}

// Remove deletes the resource at uri. Returns true if it existed.
func (rc *ResourcesContainer) Remove(uri string) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	i, ok := rc.index[uri]
	if !ok {
		return false
	}
	rc.resources = append(rc.resources[:i], rc.resources[i+1:]...)
	delete(rc.index, uri)
	for j := i; j < len(rc.resources); j++ {
		rc.index[rc.resources[j].Descriptor.URI] = j
	}
	if rc.bound != nil {
		rc.bound.RemoveResources(uri)
	}
	return true
}

// Snapshot returns a copy of the current resource descriptors.
func (rc *ResourcesContainer) Snapshot() []*mcp.Resource {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	out := make([]*mcp.Resource, 0, len(rc.resources))
	for _, r := range rc.resources {
		out = append(out, r.Descriptor)
	}
	return out
}

// ReadContents returns the current contents for uri.
func (rc *ResourcesContainer) ReadContents(uri string) (*mcp.ResourceContents, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	i, ok := rc.index[uri]
	if !ok {
		return nil, false
	}
	r := rc.resources[i]
	return &mcp.ResourceContents{URI: uri, MIMEType: r.Descriptor.MIMEType, Text: r.Text}, true
}

func (rc *ResourcesContainer) read(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	contents, ok := rc.ReadContents(uri)
	if !ok {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	rc.mu.RLock()
	observers := append([]ReadObserver(nil), rc.observers...)
	rc.mu.RUnlock()
	for _, fn := range observers {
		fn(ctx, uri)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{contents}}, nil
}

func (rc *ResourcesContainer) bind(srv *mcp.Server) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.bound = srv
	for _, r := range rc.resources {
		srv.AddResource(r.Descriptor, rc.read)
	}
}
