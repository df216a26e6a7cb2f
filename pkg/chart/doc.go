// Package chart defines the file-level description of a chart and converts
// it into the inputs of the role binder and the layout solver.
//
// A [Definition] lists pre-registered dimensions, role declarations, raw role
// bindings and a panel tree. [Definition.Declarations], [Definition.RoleConfig]
// and [Definition.Registry] feed [role.Bind]; [PanelDef.Build] produces the
// [panel.Panel] tree.
//
// Panel lengths are [Length] values: a bare number of pixels or a string
// accepted by [panel.ParseLength] or, for margins and paddings,
// [panel.ParseSides].
//
// A leaf panel can only express a fixed content demand (Content) and a fixed
// padding request (RequestPaddings); richer measurement belongs to the code
// that renders marks.
package chart
