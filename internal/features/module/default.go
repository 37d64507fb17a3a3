package module

// DefaultModules is the catalog used when no document can be loaded.
func DefaultModules() []ModuleConfig {
	return []ModuleConfig{
		{
			Key:   "dashboard",
			Name:  "Dashboard",
			Icon:  "dashboard",
			Order: 0,
			Permissions: []PermissionConfig{
				{
					Key:       "canView",
					Name:      "View dashboard",
					Endpoints: []string{"/api/dashboard", "/api/dashboard/*"},
					Routes: []RouteConfig{
						{Method: "GET", Path: "/api/dashboard"},
						{Method: "GET", Path: "/api/dashboard/*"},
					},
				},
			},
		},
		{
			Key:   "role",
			Name:  "Roles",
			Icon:  "shield",
			Order: 100,
			Permissions: []PermissionConfig{
				{
					Key:       "canView",
					Name:      "View roles",
					Endpoints: []string{"/api/role", "/api/role/{id}"},
					Routes: []RouteConfig{
						{Method: "GET", Path: "/api/role"},
						{Method: "GET", Path: "/api/role/{id}"},
					},
				},
				{
					Key:    "canCreate",
					Name:   "Create roles",
					Routes: []RouteConfig{{Method: "POST", Path: "/api/role"}},
				},
				{
					Key:    "canEdit",
					Name:   "Edit roles",
					Routes: []RouteConfig{{Method: "PUT", Path: "/api/role/{id}"}},
				},
				{
					Key:    "canDelete",
					Name:   "Delete roles",
					Routes: []RouteConfig{{Method: "DELETE", Path: "/api/role/{id}"}},
				},
			},
		},
	}
}
