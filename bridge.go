package traykit

// Tray is the query surface the presentation layer pulls from. All methods
// return snapshots; the presentation layer calls them from its own thread at
// times of its own choosing.
type Tray interface {
	ID() string
	IconName() string
	IconThemePath() string
	IconPixmap() []Icon
	Title() string
	ToolTip() ToolTip
	Menu() []Item
}

// Bridge adapts a [State] to the [Tray] interface. Every query delegates to
// the lock-guarded state, so the presentation thread and the application
// thread never observe a partially written value.
type Bridge struct {
	state *State
}

// NewBridge returns a [Bridge] over state.
func NewBridge(state *State) *Bridge {
	return &Bridge{state: state}
}

func (b *Bridge) ID() string {
	return b.state.TrayID()
}

func (b *Bridge) IconName() string {
	return b.state.IconName()
}

func (b *Bridge) IconThemePath() string {
	return b.state.IconThemePath()
}

func (b *Bridge) IconPixmap() []Icon {
	return b.state.IconPixmap()
}

func (b *Bridge) Title() string {
	return b.state.Title()
}

func (b *Bridge) ToolTip() ToolTip {
	return b.state.ToolTip()
}

func (b *Bridge) Menu() []Item {
	return b.state.BuildMenu()
}
