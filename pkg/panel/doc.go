// Package panel implements the layout solver: it negotiates the box model of
// a tree of nested panels whose content may force ancestors to grow.
//
// # Box Model
//
// Every [Panel] declares a size, a min and a max size ([Dims]), margins and
// paddings ([Sides]) and a border width. Lengths are absolute or percentages
// of a reference size; see [ParseLength] and [ParseSides] for the textual
// forms. Half the border width is added to each side of both the margins and
// the paddings. The client (content) box is the size minus margins and
// paddings, floored at zero.
//
// # Layout
//
// [Panel.Layout] resolves the declared geometry against the available and
// reference sizes, clamps it between min and max, and asks the content for
// the size it demands. A leaf asks its [Measurer]. A panel with children runs
// the dock-layout cycle:
//
//   - side children (top, bottom, left, right) are docked in declaration
//     order, each consuming its thickness from the remaining box
//   - fill children then receive the whole remaining box and are centered
//
// When a child needs more length than it was given along its side, the
// parent grows its client box and restarts the cycle, up to a fixed number
// of attempts. A child whose content asks for different paddings is re-laid
// out on its own, also a bounded number of times.
//
// When content demands more than the client box, the panel grows by the
// excess divided by (1 - p), where p is the share of percentage margins and
// paddings on that axis, and percentages are re-resolved against the grown
// reference. Growth stops at the max size. Overflow that cannot be honored is
// logged at warn level and is not an error.
//
// A panel whose client box is empty along either axis is invisible: its size
// is zero and it consumes no space.
//
// # States
//
// Panels move from [StateUncomputed] through [StateComputing] to
// [StateComputed]. Laying out a computed panel again is a no-op unless
// [LayoutOptions.Force] is set; [Panel.InvalidateLayout] resets a subtree.
// Change constraints or children only after invalidating.
//
// # Errors
//
// A root laid out without an available size must declare absolute width and
// height; otherwise Layout fails with a GEOMETRY error. Panels are not safe
// for concurrent use.
package panel
