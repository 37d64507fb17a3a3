package module

// ModuleConfig is one catalog entry. Modules are active unless isActive is
// explicitly false.
type ModuleConfig struct {
	Key         string             `json:"key" yaml:"key"`
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string             `json:"icon,omitempty" yaml:"icon,omitempty"`
	Order       int                `json:"order" yaml:"order"`
	IsActive    *bool              `json:"isActive,omitempty" yaml:"isActive,omitempty"`
	Permissions []PermissionConfig `json:"permissions" yaml:"permissions"`
}

func (m ModuleConfig) Active() bool {
	return m.IsActive == nil || *m.IsActive
}

// PermissionConfig binds a permission key to the paths it authorizes.
// Endpoints are legacy path-only patterns; Routes carry the method too.
type PermissionConfig struct {
	Key       string        `json:"key" yaml:"key"`
	Name      string        `json:"name" yaml:"name"`
	Endpoints []string      `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
	Routes    []RouteConfig `json:"routes,omitempty" yaml:"routes,omitempty"`
}

type RouteConfig struct {
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`
}

type catalogDocument struct {
	Modules []ModuleConfig `json:"modules" yaml:"modules"`
}

func (m ModuleConfig) clone() ModuleConfig {
	out := m
	if m.IsActive != nil {
		active := *m.IsActive
		out.IsActive = &active
	}
	out.Permissions = make([]PermissionConfig, len(m.Permissions))
	for i, p := range m.Permissions {
		p.Endpoints = append([]string(nil), p.Endpoints...)
		p.Routes = append([]RouteConfig(nil), p.Routes...)
		out.Permissions[i] = p
	}
	return out
}
