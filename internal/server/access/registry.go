// Package access holds the route metadata the access gate consults: which
// routes and route groups are public, i.e. exempt from the bearer-token
// check. Everything not marked public is protected.
package access

import (
	"strings"
)

// Registry associates public markers with routes and route groups. It is
// populated once during route registration at startup and only read
// afterwards, so concurrent reads need no locking.
type Registry struct {
	routes map[string]bool
	groups map[string]bool
}

// NewRegistry creates an empty registry. With no markers set, every route is
// protected.
func NewRegistry() *Registry {
	return &Registry{
		routes: make(map[string]bool),
		groups: make(map[string]bool),
	}
}

// SetRoute marks a single route (method + registered path pattern, e.g.
// "GET /api/quotes/:id"). A route-level marker wins outright over any group
// marker, in both directions.
func (r *Registry) SetRoute(method, path string, public bool) {
	r.routes[routeKey(method, path)] = public
}

// SetGroup marks every route under a path prefix (e.g. "/api/quotes"). Used
// as the fallback when the specific route carries no marker.
func (r *Registry) SetGroup(prefix string, public bool) {
	r.groups[strings.TrimSuffix(prefix, "/")] = public
}

// IsPublic reports whether the route may bypass the token check. Lookup
// order: route-level marker first; otherwise the longest matching group
// prefix; otherwise false (deny by default).
func (r *Registry) IsPublic(method, path string) bool {
	if v, ok := r.routes[routeKey(method, path)]; ok {
		return v
	}

	bestLen := -1
	best := false
	for prefix, v := range r.groups {
		if !matchesPrefix(path, prefix) {
			continue
		}
		if len(prefix) > bestLen {
			bestLen = len(prefix)
			best = v
		}
	}
	if bestLen >= 0 {
		return best
	}
	return false
}

func routeKey(method, path string) string {
	return method + " " + path
}

// matchesPrefix reports whether path falls under prefix on path-segment
// boundaries, so "/api/quote" does not match group "/api/quotes".
func matchesPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
