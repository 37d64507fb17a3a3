package module

import (
	"cmp"
	"slices"
	"strings"
)

// SourceBuiltin is reported by Source when the built-in catalog is in use.
const SourceBuiltin = "builtin"

type compiledRoute struct {
	method string
	path   pathMatcher
}

type compiledPermission struct {
	key       string
	endpoints []pathMatcher
	routes    []compiledRoute
}

type compiledModule struct {
	config      ModuleConfig
	permissions []compiledPermission
}

// Registry is the module and route catalog. It is immutable once built and
// safe for concurrent readers.
type Registry struct {
	modules []compiledModule
	byKey   map[string]int
	source  string
}

// NewRegistry compiles every pattern up front. For duplicate module keys the
// first declaration wins.
func NewRegistry(modules []ModuleConfig, source string) *Registry {
	r := &Registry{
		modules: make([]compiledModule, 0, len(modules)),
		byKey:   make(map[string]int, len(modules)),
		source:  source,
	}

	for _, m := range modules {
		key := strings.ToLower(strings.TrimSpace(m.Key))
		if key == "" {
			continue
		}
		if _, exists := r.byKey[key]; exists {
			continue
		}

		cm := compiledModule{config: m.clone()}
		for _, p := range m.Permissions {
			cp := compiledPermission{key: p.Key}
			for _, endpoint := range p.Endpoints {
				cp.endpoints = append(cp.endpoints, compilePattern(endpoint))
			}
			for _, route := range p.Routes {
				cp.routes = append(cp.routes, compiledRoute{
					method: strings.TrimSpace(route.Method),
					path:   compilePattern(route.Path),
				})
			}
			cm.permissions = append(cm.permissions, cp)
		}

		r.byKey[key] = len(r.modules)
		r.modules = append(r.modules, cm)
	}
	return r
}

// Source names the document the catalog was read from, or SourceBuiltin.
func (r *Registry) Source() string {
	return r.source
}

// ActiveModules returns active modules sorted by order, ties in declared order.
func (r *Registry) ActiveModules() []ModuleConfig {
	out := make([]ModuleConfig, 0, len(r.modules))
	for _, m := range r.modules {
		if m.config.Active() {
			out = append(out, m.config.clone())
		}
	}
	slices.SortStableFunc(out, func(a, b ModuleConfig) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return out
}

// Module looks a module up by key, ignoring case.
func (r *Registry) Module(key string) (ModuleConfig, bool) {
	m, ok := r.lookup(key)
	if !ok {
		return ModuleConfig{}, false
	}
	return m.config.clone(), true
}

func (r *Registry) lookup(key string) (*compiledModule, bool) {
	idx, ok := r.byKey[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil, false
	}
	return &r.modules[idx], true
}

func (m *compiledModule) permission(key string) (*compiledPermission, bool) {
	for i := range m.permissions {
		if strings.EqualFold(m.permissions[i].key, key) {
			return &m.permissions[i], true
		}
	}
	return nil, false
}

func (p *compiledPermission) allowsRoute(method, path string) bool {
	for _, route := range p.routes {
		if strings.EqualFold(route.method, method) && route.path.Match(path) {
			return true
		}
	}
	return false
}

// IsRouteAllowed reports whether the module's permission key authorizes the
// method and path. Unknown modules or keys authorize nothing.
func (r *Registry) IsRouteAllowed(moduleKey, permissionKey, method, path string) bool {
	m, ok := r.lookup(moduleKey)
	if !ok {
		return false
	}
	p, ok := m.permission(permissionKey)
	if !ok {
		return false
	}
	return p.allowsRoute(method, path)
}

// IsEndpointAllowed is the method-less check against legacy endpoint patterns.
func (r *Registry) IsEndpointAllowed(moduleKey, permissionKey, path string) bool {
	m, ok := r.lookup(moduleKey)
	if !ok {
		return false
	}
	p, ok := m.permission(permissionKey)
	if !ok {
		return false
	}
	for _, endpoint := range p.endpoints {
		if endpoint.Match(path) {
			return true
		}
	}
	return false
}

// PermissionKeysForRoute lists, in declared order, every permission key of the
// module whose routes authorize the method and path.
func (r *Registry) PermissionKeysForRoute(moduleKey, method, path string) []string {
	m, ok := r.lookup(moduleKey)
	if !ok {
		return nil
	}
	var keys []string
	for i := range m.permissions {
		if m.permissions[i].allowsRoute(method, path) {
			keys = append(keys, m.permissions[i].key)
		}
	}
	return keys
}
