package traykit

import "traykit/menu"

// Item is one entry of the built menu snapshot handed to the presentation
// layer. Unlike [menu.Node], items carry activation closures instead of
// identifiers; the presentation layer invokes them when the user interacts.
//
// The set of implementations is closed: [StandardItem], [CheckmarkItem],
// [RadioGroupItem], [SubMenuItem], and [SeparatorItem].
type Item interface {
	item()
}

// StandardItem is a stateless clickable entry.
type StandardItem struct {
	Label    string
	IconName string
	Enabled  bool
	Visible  bool

	// Activate is invoked by the presentation layer when the entry is
	// clicked. Never nil.
	Activate func()
}

// CheckmarkItem is a toggleable entry. Checked reflects the state at build
// time; invoking Activate toggles the underlying tray state.
type CheckmarkItem struct {
	Label    string
	IconName string
	Enabled  bool
	Visible  bool
	Checked  bool

	Activate func()
}

// RadioGroupItem is a set of mutually exclusive options. Selected indexes
// into Options; a value out of range means no valid selection.
type RadioGroupItem struct {
	Selected int
	Options  []RadioOptionItem

	// Select is invoked by the presentation layer with the index of the
	// chosen option. Never nil.
	Select func(index int)
}

// RadioOptionItem is a single choice within a [RadioGroupItem].
type RadioOptionItem struct {
	Label    string
	IconName string
	Enabled  bool
	Visible  bool
}

// SubMenuItem is a container of further items.
type SubMenuItem struct {
	Label    string
	IconName string
	Enabled  bool
	Visible  bool
	Children []Item
}

// SeparatorItem is a visual divider.
type SeparatorItem struct{}

func (StandardItem) item()   {}
func (CheckmarkItem) item()  {}
func (RadioGroupItem) item() {}
func (SubMenuItem) item()    {}
func (SeparatorItem) item()  {}

// BuildMenu produces the presentation snapshot of the current menu tree.
//
// It is a pure read: calling it any number of times on an unchanged tree
// yields structurally identical output. Closures embedded in the returned
// items capture copies of the relevant identifiers and the event queue as
// attached at build time, never references into the tree, so the tree may be
// freely rebuilt between snapshot creation and closure invocation.
func (s *State) BuildMenu() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buildNodes(s.menu)
}

// buildNodes is called with the state lock held.
func (s *State) buildNodes(nodes []menu.Node) []Item {
	items := make([]Item, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, s.buildNode(n))
	}

	return items
}

func (s *State) buildNode(n menu.Node) Item {
	// Captured by the closures below. The queue is whatever sender was
	// attached when the snapshot was built; nil suppresses emission.
	queue := s.events

	switch node := n.(type) {
	case *menu.Standard:
		id := node.ID
		return StandardItem{
			Label:    node.Label,
			IconName: node.IconName,
			Enabled:  node.Enabled,
			Visible:  node.Visible,
			Activate: func() {
				if queue != nil {
					queue.send(Activated{ID: id})
				}
			},
		}

	case *menu.Checkmark:
		id := node.ID
		return CheckmarkItem{
			Label:    node.Label,
			IconName: node.IconName,
			Enabled:  node.Enabled,
			Visible:  node.Visible,
			Checked:  node.Checked,
			Activate: func() {
				// ToggleCheckmark takes and releases the state lock;
				// the event is sent only after it returns.
				checked, ok := s.ToggleCheckmark(id)
				if ok && queue != nil {
					queue.send(CheckmarkToggled{ID: id, Checked: checked})
				}
			},
		}

	case *menu.RadioGroup:
		groupID := node.ID
		options := make([]RadioOptionItem, len(node.Options))
		for i, opt := range node.Options {
			options[i] = RadioOptionItem{
				Label:    opt.Label,
				IconName: opt.IconName,
				Enabled:  opt.Enabled,
				Visible:  opt.Visible,
			}
		}

		return RadioGroupItem{
			Selected: node.Selected,
			Options:  options,
			Select: func(index int) {
				optionID, ok := s.SelectRadio(groupID, index)
				if ok && queue != nil {
					queue.send(RadioSelected{
						GroupID:  groupID,
						Index:    index,
						OptionID: optionID,
					})
				}
			},
		}

	case *menu.SubMenu:
		return SubMenuItem{
			Label:    node.Label,
			IconName: node.IconName,
			Enabled:  node.Enabled,
			Visible:  node.Visible,
			Children: s.buildNodes(node.Children),
		}

	default:
		return SeparatorItem{}
	}
}
