// Package sni is the D-Bus presentation layer for traykit. It publishes a
// [traykit.Tray] on the session bus as a [StatusNotifierItem], serves its
// menu over the com.canonical.dbusmenu interface, and registers the item
// with the StatusNotifierWatcher so tray hosts can pick it up.
//
// The package owns the thread that handles host requests: menu queries and
// item activation run on the D-Bus dispatch goroutine, never on the
// application goroutine. Interaction dispatch invokes the closures embedded
// in the built menu snapshot, which lock and mutate the tray state
// themselves.
//
// [StatusNotifierItem]: https://www.freedesktop.org/wiki/Specifications/StatusNotifierItem/
package sni

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/prop"
	"go.uber.org/zap"

	"traykit"
)

const (
	StatusNotifierItemInterface = "org.kde.StatusNotifierItem"
	StatusNotifierItemPath      = "/StatusNotifierItem"

	StatusNotifierWatcherInterface = "org.kde.StatusNotifierWatcher"
	StatusNotifierWatcherPath      = "/StatusNotifierWatcher"
)

type Category string

// StatusNotifierItem categories.
const (
	// The item describes the status of a generic application, for instance the
	// current state of a media player.
	CategoryApplicationStatus Category = "ApplicationStatus"

	// The item describes the status of communication oriented applications, like
	// an instant messenger or an email client.
	CategoryCommunications Category = "Communications"

	// The item describes services of the system not seen as a stand alone
	// application by the user, such as an indicator for the activity of a disk
	// indexing service.
	CategorySystemServices Category = "SystemServices"

	// The item describes the state and control of a particular hardware, such as
	// an indicator of the battery charge or sound card volume control.
	CategoryHardware Category = "Hardware"
)

type Status string

// StatusNotifierItem statuses.
const (
	// The item doesn't convey important information to the user, it can be
	// considered an "idle" status and is likely that visualizations will choose
	// to hide it.
	StatusPassive Status = "Passive"

	// The item is active, is more important that the item will be shown in some
	// way to the user.
	StatusActive Status = "Active"

	// The item carries really important information for the user and wants to
	// incentive the direct user intervention. Visualizations should emphasize
	// items with NeedsAttention status.
	StatusNeedsAttention Status = "NeedsAttention"
)

// itemCounter disambiguates multiple items spawned by one process. Bus names
// follow the org.kde.StatusNotifierItem-<pid>-<n> convention.
var itemCounter uint32

// pixmap is the D-Bus representation of an icon, signature (iiay).
type pixmap struct {
	Width  int32
	Height int32
	Bytes  []byte
}

// toolTip is the D-Bus representation of a tooltip, signature (sa(iiay)ss).
type toolTip struct {
	IconName    string
	IconPixmap  []pixmap
	Title       string
	Description string
}

func toPixmaps(icons []traykit.Icon) []pixmap {
	pixmaps := make([]pixmap, 0, len(icons))
	for _, icon := range icons {
		pixmaps = append(pixmaps, pixmap{
			Width:  icon.Width,
			Height: icon.Height,
			Bytes:  icon.Bytes,
		})
	}

	return pixmaps
}

func toToolTip(t traykit.ToolTip) toolTip {
	return toolTip{
		IconName:    t.IconName,
		IconPixmap:  []pixmap{},
		Title:       t.Title,
		Description: t.Description,
	}
}

// Spawner launches StatusNotifierItem instances on the session bus. The zero
// value is usable; fields override the advertised item metadata.
//
// Spawner implements [traykit.Spawner].
type Spawner struct {
	// Category of the item. Defaults to [CategoryApplicationStatus].
	Category Category

	// Status of the item. Defaults to [StatusActive].
	Status Status

	// Whether the item only supports a context menu. Hosts should prefer
	// showing the menu over activating the item when set.
	ItemIsMenu bool

	// Logger for protocol-level diagnostics. Defaults to a no-op logger;
	// the tray core itself never logs.
	Logger *zap.Logger
}

// Spawn connects to the session bus, exports the item and its menu, and
// registers with the StatusNotifierWatcher.
//
// Spawn fails when the session bus is unavailable, the item name cannot be
// acquired, or no watcher is present on the bus (no system tray host).
func (s Spawner) Spawn(tray traykit.Tray) (traykit.Handle, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("spawn: failed to connect to session bus: %w", err)
	}

	name := fmt.Sprintf("org.kde.StatusNotifierItem-%d-%d", os.Getpid(), atomic.AddUint32(&itemCounter, 1))

	reply, err := conn.RequestName(name, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("spawn: failed to request name %s: %w", name, err)
	}

	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return nil, fmt.Errorf("spawn: name %s already taken", name)
	}

	h := &Handle{
		conn:    conn,
		name:    name,
		tray:    tray,
		log:     logger,
		signals: make(chan *dbus.Signal, 64),
	}

	if err := h.export(s); err != nil {
		conn.Close()
		return nil, fmt.Errorf("spawn: %w", err)
	}

	if err := h.register(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("spawn: %w", err)
	}

	h.watchWatcher()

	return h, nil
}

// Handle refers to a spawned StatusNotifierItem. It implements
// [traykit.Handle].
type Handle struct {
	conn    *dbus.Conn
	name    string
	tray    traykit.Tray
	log     *zap.Logger
	props   *prop.Properties
	menu    *menuObject
	signals chan *dbus.Signal

	mu     sync.Mutex
	closed bool
}

// export exports the StatusNotifierItem methods and properties along with
// the dbusmenu object.
func (h *Handle) export(s Spawner) error {
	h.menu = newMenuObject(h.conn, h.tray, h.log)
	if err := h.menu.export(); err != nil {
		return err
	}

	if err := h.conn.Export(&itemObject{log: h.log}, StatusNotifierItemPath, StatusNotifierItemInterface); err != nil {
		return fmt.Errorf("failed to export %s: %w", StatusNotifierItemInterface, err)
	}

	category := s.Category
	if category == "" {
		category = CategoryApplicationStatus
	}

	status := s.Status
	if status == "" {
		status = StatusActive
	}

	props, err := prop.Export(h.conn, StatusNotifierItemPath, prop.Map{
		StatusNotifierItemInterface: map[string]*prop.Prop{
			"Category":            {Value: string(category), Emit: prop.EmitTrue},
			"Id":                  {Value: h.tray.ID(), Emit: prop.EmitTrue},
			"Title":               {Value: h.tray.Title(), Emit: prop.EmitTrue},
			"Status":              {Value: string(status), Emit: prop.EmitTrue},
			"WindowId":            {Value: uint32(0), Emit: prop.EmitTrue},
			"IconName":            {Value: h.tray.IconName(), Emit: prop.EmitTrue},
			"IconThemePath":       {Value: h.tray.IconThemePath(), Emit: prop.EmitTrue},
			"IconPixmap":          {Value: toPixmaps(h.tray.IconPixmap()), Emit: prop.EmitTrue},
			"OverlayIconName":     {Value: "", Emit: prop.EmitTrue},
			"OverlayIconPixmap":   {Value: []pixmap{}, Emit: prop.EmitTrue},
			"AttentionIconName":   {Value: "", Emit: prop.EmitTrue},
			"AttentionIconPixmap": {Value: []pixmap{}, Emit: prop.EmitTrue},
			"AttentionMovieName":  {Value: "", Emit: prop.EmitTrue},
			"ToolTip":             {Value: toToolTip(h.tray.ToolTip()), Emit: prop.EmitTrue},
			"ItemIsMenu":          {Value: s.ItemIsMenu, Emit: prop.EmitTrue},
			"Menu":                {Value: dbus.ObjectPath(MenuPath), Emit: prop.EmitTrue},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to export %s properties: %w", StatusNotifierItemInterface, err)
	}

	h.props = props

	return nil
}

// register announces the item to the StatusNotifierWatcher. Without a
// watcher on the bus there is no system tray host to display the item.
func (h *Handle) register() error {
	call := h.conn.Object(StatusNotifierWatcherInterface, StatusNotifierWatcherPath).Call(
		StatusNotifierWatcherInterface+".RegisterStatusNotifierItem",
		0,
		h.name,
	)
	if call.Err != nil {
		return fmt.Errorf("failed to register item: %w", call.Err)
	}

	return nil
}

// watchWatcher re-registers the item whenever the watcher name changes
// owner. Tray hosts restart; without re-registration the item would silently
// disappear from the tray.
func (h *Handle) watchWatcher() {
	h.conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchSender("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
		dbus.WithMatchArg(0, StatusNotifierWatcherInterface),
	)

	h.conn.Signal(h.signals)

	go func() {
		for signal := range h.signals {
			if signal.Name != "org.freedesktop.DBus.NameOwnerChanged" {
				continue
			}

			if len(signal.Body) < 3 {
				continue
			}

			name, ok := signal.Body[0].(string)
			if !ok || name != StatusNotifierWatcherInterface {
				continue
			}

			newOwner, ok := signal.Body[2].(string)
			if !ok || newOwner == "" {
				continue
			}

			if err := h.register(); err != nil {
				h.log.Warn("failed to re-register with watcher", zap.Error(err))
			}
		}
	}()
}

// Update runs mutate, then pushes the refreshed tray state to the bus: item
// properties are re-read, the appropriate New* signals are emitted, and the
// menu layout is rebuilt.
func (h *Handle) Update(mutate func()) {
	if mutate != nil {
		mutate()
	}

	h.refresh()
}

func (h *Handle) refresh() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	h.props.SetMust(StatusNotifierItemInterface, "Id", h.tray.ID())
	h.props.SetMust(StatusNotifierItemInterface, "Title", h.tray.Title())
	h.props.SetMust(StatusNotifierItemInterface, "IconName", h.tray.IconName())
	h.props.SetMust(StatusNotifierItemInterface, "IconThemePath", h.tray.IconThemePath())
	h.props.SetMust(StatusNotifierItemInterface, "IconPixmap", toPixmaps(h.tray.IconPixmap()))
	h.props.SetMust(StatusNotifierItemInterface, "ToolTip", toToolTip(h.tray.ToolTip()))

	for _, member := range []string{"NewTitle", "NewIcon", "NewToolTip"} {
		if err := h.conn.Emit(StatusNotifierItemPath, StatusNotifierItemInterface+"."+member); err != nil {
			h.log.Warn("failed to emit signal", zap.String("member", member), zap.Error(err))
		}
	}

	h.menu.rebuild(true)
}

// Close releases the item name and disconnects from the bus. The handle
// cannot be reused after Close was called.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}

	if err := h.conn.RemoveMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchSender("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
		dbus.WithMatchArg(0, StatusNotifierWatcherInterface),
	); err != nil {
		return err
	}

	h.conn.RemoveSignal(h.signals)
	close(h.signals)

	if _, err := h.conn.ReleaseName(h.name); err != nil {
		return err
	}

	h.closed = true

	return h.conn.Close()
}

// itemObject receives the StatusNotifierItem method calls issued by tray
// hosts. Activation requests have no tray-level meaning here, only menu
// interaction does, so they are acknowledged and logged.
type itemObject struct {
	log *zap.Logger
}

func (o *itemObject) Activate(x, y int32) *dbus.Error {
	o.log.Debug("item activated", zap.Int32("x", x), zap.Int32("y", y))
	return nil
}

func (o *itemObject) SecondaryActivate(x, y int32) *dbus.Error {
	o.log.Debug("item secondary-activated", zap.Int32("x", x), zap.Int32("y", y))
	return nil
}

func (o *itemObject) ContextMenu(x, y int32) *dbus.Error {
	o.log.Debug("context menu requested", zap.Int32("x", x), zap.Int32("y", y))
	return nil
}

func (o *itemObject) Scroll(delta int32, orientation string) *dbus.Error {
	o.log.Debug("item scrolled", zap.Int32("delta", delta), zap.String("orientation", orientation))
	return nil
}
