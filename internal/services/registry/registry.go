// Package registry tracks the secondary servers the aggregation layer fans
// out to. The registry is an explicitly owned object injected into its
// consumers; there is no process-wide instance.
package registry

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// ErrExists reports a registration under a name already taken.
var ErrExists = errors.New("server already registered")

// ErrNotFound reports an unknown server name.
var ErrNotFound = errors.New("server not found")

// Server describes one secondary tailscope instance.
type Server struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Registry is a concurrency-safe, ordered set of secondary servers.
type Registry struct {
	mu      sync.RWMutex
	servers []Server
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Add registers a server. The URL must be absolute http(s); trailing
// slashes are trimmed so request paths join cleanly.
func (r *Registry) Add(s Server) error {
	if s.Name == "" {
		return fmt.Errorf("server name must be set")
	}
	u, err := url.Parse(s.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server url %q", s.URL)
	}
	s.URL = strings.TrimRight(s.URL, "/")

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.servers {
		if existing.Name == s.Name {
			return fmt.Errorf("%w: %s", ErrExists, s.Name)
		}
	}
	r.servers = append(r.servers, s)
	return nil
}

// Remove unregisters a server by name.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.servers {
		if s.Name == name {
			r.servers = append(r.servers[:i], r.servers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Get returns a server by name.
func (r *Registry) Get(name string) (Server, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.servers {
		if s.Name == name {
			return s, nil
		}
	}
	return Server{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// List returns all servers in registration order.
func (r *Registry) List() []Server {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Server, len(r.servers))
	copy(out, r.servers)
	return out
}

// Select returns the servers whose names appear in names, or every server
// when names is empty. Unknown names are ignored; an empty result with a
// non-empty names list means nothing matched.
func (r *Registry) Select(names []string) []Server {
	if len(names) == 0 {
		return r.List()
	}
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			want[n] = struct{}{}
		}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Server
	for _, s := range r.servers {
		if _, ok := want[s.Name]; ok {
			out = append(out, s)
		}
	}
	return out
}
