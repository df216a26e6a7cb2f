package chart

// Definition is a complete chart description: the dimensions known up front,
// the visual roles, the per-role configuration and the panel tree.
type Definition struct {
	Name       string         `json:"name,omitempty" toml:"name"`
	Dimensions []DimensionDef `json:"dimensions,omitempty" toml:"dimensions"`
	Roles      []RoleDef      `json:"roles" toml:"roles"`

	// Bindings holds raw role configuration keyed by role key. Values are
	// decoded with role.ParseValue: null, a dimension name, or an object.
	Bindings map[string]any `json:"bindings,omitempty" toml:"bindings"`

	Root *PanelDef `json:"root,omitempty" toml:"root"`
}

// DimensionDef pre-registers a dimension.
type DimensionDef struct {
	Name      string `json:"name" toml:"name"`
	ValueType string `json:"value_type,omitempty" toml:"value_type"`
	Label     string `json:"label,omitempty" toml:"label"`
	Format    string `json:"format,omitempty" toml:"format"`
}

// MetadataDef is dimension metadata declared by a role as its defaults.
type MetadataDef struct {
	ValueType string `json:"value_type,omitempty" toml:"value_type"`
	Label     string `json:"label,omitempty" toml:"label"`
	Format    string `json:"format,omitempty" toml:"format"`
}

// RoleDef declares a visual role.
type RoleDef struct {
	Name              string      `json:"name" toml:"name"`
	Scope             string      `json:"scope,omitempty" toml:"scope"`
	DefaultDimension  string      `json:"default_dimension,omitempty" toml:"default_dimension"`
	DefaultSourceRole string      `json:"default_source_role,omitempty" toml:"default_source_role"`
	AutoCreate        bool        `json:"auto_create,omitempty" toml:"auto_create"`
	Required          bool        `json:"required,omitempty" toml:"required"`
	Defaults          MetadataDef `json:"defaults,omitempty" toml:"defaults"`
}

// Key returns the role key, "scope.name" for scoped roles.
func (r RoleDef) Key() string {
	if r.Scope == "" {
		return r.Name
	}
	return r.Scope + "." + r.Name
}

// PanelDef declares a panel and its children.
type PanelDef struct {
	Name   string `json:"name" toml:"name"`
	Anchor string `json:"anchor,omitempty" toml:"anchor"`
	Align  string `json:"align,omitempty" toml:"align"`

	Width     Length `json:"width,omitempty" toml:"width"`
	Height    Length `json:"height,omitempty" toml:"height"`
	MinWidth  Length `json:"min_width,omitempty" toml:"min_width"`
	MinHeight Length `json:"min_height,omitempty" toml:"min_height"`
	MaxWidth  Length `json:"max_width,omitempty" toml:"max_width"`
	MaxHeight Length `json:"max_height,omitempty" toml:"max_height"`

	Margins     Length  `json:"margins,omitempty" toml:"margins"`
	Paddings    Length  `json:"paddings,omitempty" toml:"paddings"`
	BorderWidth float64 `json:"border_width,omitempty" toml:"border_width"`

	// Content gives a leaf a fixed demanded content size.
	Content *ContentDef `json:"content,omitempty" toml:"content"`

	// RequestPaddings makes the leaf ask its parent for these absolute
	// paddings, in the sides shorthand.
	RequestPaddings Length `json:"request_paddings,omitempty" toml:"request_paddings"`

	Children []PanelDef `json:"children,omitempty" toml:"children"`
}

// ContentDef is a demanded content size.
type ContentDef struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}
