// Package menu defines the tray menu tree and the operations that search and
// mutate it.
//
// The tree is a closed set of node kinds implementing [Node]. Container nodes
// ([SubMenu]) may nest to arbitrary depth. All operations that locate a node
// by identifier or label perform a pre-order depth-first search over the tree,
// descending into submenu children before continuing to later siblings, and
// affect only the first match. Identifiers are opaque strings that are not
// required to be globally unique; callers that reuse an identifier or a
// submenu label across scopes get first-match-wins behavior.
package menu

// Node is one entry of the menu tree, either a leaf or a container.
//
// The set of implementations is closed: [Standard], [Checkmark], [RadioGroup],
// [SubMenu], and [Separator]. Traversals dispatch on the concrete type.
type Node interface {
	node()
}

// Standard is a stateless clickable menu entry.
type Standard struct {
	// Identifier reported when the entry is activated.
	ID string

	// Display text of the entry.
	Label string

	// Freedesktop-compliant icon name, empty for no icon.
	IconName string

	// Whether the entry can be clicked.
	Enabled bool

	// Whether the entry is shown in the menu.
	Visible bool
}

// Checkmark is a menu entry with a toggleable checked state.
//
// Checked is the only field mutated by interaction callbacks.
type Checkmark struct {
	ID       string
	Label    string
	IconName string
	Enabled  bool
	Visible  bool

	// Current checked state.
	Checked bool
}

// RadioGroup is a set of mutually exclusive options.
//
// Selected indexes into Options. A value outside the range of Options means
// no valid selection; construction permits this temporarily until options
// are added.
type RadioGroup struct {
	ID       string
	Selected int
	Options  []RadioOption
}

// RadioOption is a single choice within a [RadioGroup]. Options belong to
// exactly one group and are never nested further.
type RadioOption struct {
	ID       string
	Label    string
	IconName string
	Enabled  bool
	Visible  bool
}

// SubMenu is a container of further nodes. Submenus have no identifier of
// their own; lookups target them by label.
type SubMenu struct {
	Label    string
	IconName string
	Enabled  bool
	Visible  bool
	Children []Node
}

// Separator is a visual divider. It has no fields and is never interactive.
type Separator struct{}

func (*Standard) node()   {}
func (*Checkmark) node()  {}
func (*RadioGroup) node() {}
func (*SubMenu) node()    {}
func (*Separator) node()  {}
