package traykit

import (
	"image"
	"sync"

	"traykit/menu"
)

// State holds the appearance and menu tree of a tray item.
//
// A single exclusive lock guards the whole struct. Every operation acquires
// it for its duration and releases it before returning; no lock is ever held
// across an event send. The application thread configures the state at any
// time, including before the presentation layer exists, while the
// presentation thread reads it through [Bridge] at times of its own choosing.
//
// Lookup operations report failure through boolean results and never modify
// the tree when the target is missing.
type State struct {
	mu            sync.Mutex
	trayID        string
	iconName      string
	iconThemePath string
	iconPixmap    []Icon
	title         string
	tooltip       ToolTip
	menu          []menu.Node
	events        *eventQueue
}

// NewState returns a new [State] with the given tray identifier and default
// appearance.
func NewState(trayID string) *State {
	return &State{
		trayID:   trayID,
		iconName: "application-x-executable",
		title:    "Tray Icon",
	}
}

// attachEvents attaches the outgoing event sender. Called exactly once per
// spawn attempt; menu snapshots built before attachment carry no sender and
// silently skip emission.
func (s *State) attachEvents(q *eventQueue) {
	s.mu.Lock()
	s.events = q
	s.mu.Unlock()
}

// SetTrayID sets the unique identifier of the tray item.
func (s *State) SetTrayID(trayID string) {
	s.mu.Lock()
	s.trayID = trayID
	s.mu.Unlock()
}

// SetIconName sets the tray icon to a freedesktop-compliant icon name.
func (s *State) SetIconName(name string) {
	s.mu.Lock()
	s.iconName = name
	s.mu.Unlock()
}

// SetIconThemePath sets the path searched for custom icon themes.
func (s *State) SetIconThemePath(path string) {
	s.mu.Lock()
	s.iconThemePath = path
	s.mu.Unlock()
}

// SetIconFromRGBA sets the tray icon from raw 8-bit-per-channel RGBA pixel
// data. The data is converted to ARGB before storing. The icon name is
// cleared so that visualizations prefer the pixmap.
//
// On error the state is left unchanged.
func (s *State) SetIconFromRGBA(width, height int, rgba []byte) error {
	icon, err := NewIconFromRGBA(width, height, rgba)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.iconPixmap = []Icon{icon}
	s.iconName = ""
	s.mu.Unlock()

	return nil
}

// SetIconFromImage sets the tray icon from an [image.Image].
//
// On error the state is left unchanged.
func (s *State) SetIconFromImage(img image.Image) error {
	icon, err := NewIconFromImage(img)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.iconPixmap = []Icon{icon}
	s.iconName = ""
	s.mu.Unlock()

	return nil
}

// ClearIconPixmap removes the pixmap icon. The tray falls back to the icon
// name, if one is set.
func (s *State) ClearIconPixmap() {
	s.mu.Lock()
	s.iconPixmap = nil
	s.mu.Unlock()
}

// SetTitle sets the title text of the tray item.
func (s *State) SetTitle(title string) {
	s.mu.Lock()
	s.title = title
	s.mu.Unlock()
}

// SetToolTip sets the tooltip shown when hovering over the tray item.
func (s *State) SetToolTip(tooltip ToolTip) {
	s.mu.Lock()
	s.tooltip = tooltip
	s.mu.Unlock()
}

// TrayID returns the tray identifier.
func (s *State) TrayID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trayID
}

// IconName returns the current icon name.
func (s *State) IconName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.iconName
}

// IconThemePath returns the current icon theme path.
func (s *State) IconThemePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.iconThemePath
}

// IconPixmap returns a copy of the current pixmap icons.
func (s *State) IconPixmap() []Icon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneIcons(s.iconPixmap)
}

// Title returns the current title.
func (s *State) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// ToolTip returns the current tooltip.
func (s *State) ToolTip() ToolTip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tooltip
}

// ClearMenu removes all menu entries. Useful when rebuilding the menu from
// scratch.
func (s *State) ClearMenu() {
	s.mu.Lock()
	s.menu = nil
	s.mu.Unlock()
}

// AddItem appends a standard clickable entry to the root menu. Clicking it
// produces an [Activated] event.
func (s *State) AddItem(id, label, iconName string, enabled, visible bool) {
	s.mu.Lock()
	s.menu = append(s.menu, &menu.Standard{
		ID:       id,
		Label:    label,
		IconName: iconName,
		Enabled:  enabled,
		Visible:  visible,
	})
	s.mu.Unlock()
}

// AddCheckmark appends a toggleable entry to the root menu. Toggling it
// produces a [CheckmarkToggled] event.
func (s *State) AddCheckmark(id, label, iconName string, checked, enabled, visible bool) {
	s.mu.Lock()
	s.menu = append(s.menu, &menu.Checkmark{
		ID:       id,
		Label:    label,
		IconName: iconName,
		Enabled:  enabled,
		Visible:  visible,
		Checked:  checked,
	})
	s.mu.Unlock()
}

// AddRadioGroup appends an empty radio group to the root menu. Options are
// added with [State.AddRadioOption]. A selected index outside the eventual
// option range means no valid selection.
func (s *State) AddRadioGroup(id string, selected int) {
	s.mu.Lock()
	s.menu = append(s.menu, &menu.RadioGroup{
		ID:       id,
		Selected: selected,
	})
	s.mu.Unlock()
}

// AddRadioOption appends an option to the first radio group with the given
// id, searching the whole tree. It reports whether the group was found; the
// group is never created implicitly.
func (s *State) AddRadioOption(groupID, optionID, label, iconName string, enabled, visible bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return menu.AppendRadioOption(s.menu, groupID, menu.RadioOption{
		ID:       optionID,
		Label:    label,
		IconName: iconName,
		Enabled:  enabled,
		Visible:  visible,
	})
}

// AddSeparator appends a visual divider to the root menu.
func (s *State) AddSeparator() {
	s.mu.Lock()
	s.menu = append(s.menu, &menu.Separator{})
	s.mu.Unlock()
}

// BeginSubMenu appends an empty submenu to the root menu. Entries are added
// to it with the AddSubMenu variants, targeting the submenu by label.
func (s *State) BeginSubMenu(label, iconName string, enabled, visible bool) {
	s.mu.Lock()
	s.menu = append(s.menu, &menu.SubMenu{
		Label:    label,
		IconName: iconName,
		Enabled:  enabled,
		Visible:  visible,
	})
	s.mu.Unlock()
}

// AddSubMenuItem appends a standard entry to the first submenu with the given
// label. It reports whether the submenu was found.
func (s *State) AddSubMenuItem(submenuLabel, id, label, iconName string, enabled, visible bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return menu.AppendChild(s.menu, submenuLabel, &menu.Standard{
		ID:       id,
		Label:    label,
		IconName: iconName,
		Enabled:  enabled,
		Visible:  visible,
	})
}

// AddSubMenuCheckmark appends a checkmark entry to the first submenu with the
// given label. It reports whether the submenu was found.
func (s *State) AddSubMenuCheckmark(submenuLabel, id, label, iconName string, checked, enabled, visible bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return menu.AppendChild(s.menu, submenuLabel, &menu.Checkmark{
		ID:       id,
		Label:    label,
		IconName: iconName,
		Enabled:  enabled,
		Visible:  visible,
		Checked:  checked,
	})
}

// AddSubMenuSeparator appends a divider to the first submenu with the given
// label. It reports whether the submenu was found.
func (s *State) AddSubMenuSeparator(submenuLabel string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return menu.AppendChild(s.menu, submenuLabel, &menu.Separator{})
}

// SetCheckmarkState sets the checked state of a checkmark entry directly,
// without toggling and without emitting an event. Events are reserved for
// interaction-triggered changes.
func (s *State) SetCheckmarkState(id string, checked bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return menu.SetCheckmark(s.menu, id, checked)
}

// SetRadioSelected sets the selection of a radio group directly, without
// emitting an event.
func (s *State) SetRadioSelected(groupID string, index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return menu.SetRadioSelected(s.menu, groupID, index)
}

// ToggleCheckmark inverts the checked state of the first checkmark entry
// with the given id and returns the new state. The boolean result reports
// whether a matching entry was found anywhere in the tree.
//
// This is the mutation performed by checkmark activation callbacks; the
// caller is responsible for emitting the corresponding event after the lock
// has been released.
func (s *State) ToggleCheckmark(id string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return menu.ToggleCheckmark(s.menu, id)
}

// SelectRadio selects the option at index within the first radio group with
// the given id and a sufficient option count, returning the id of the
// selected option. Groups whose id matches but whose index is out of range
// are passed over in favor of any later match.
func (s *State) SelectRadio(groupID string, index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return menu.SelectRadio(s.menu, groupID, index)
}
