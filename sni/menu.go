package sni

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/prop"
	"go.uber.org/zap"

	"traykit"
)

const (
	MenuInterface = "com.canonical.dbusmenu"
	MenuPath      = "/MenuBar"
)

// menuObject serves the com.canonical.dbusmenu interface for one tray item.
//
// It holds the most recently built layout. Every mutation of the tray state
// triggered through Event, and every Handle.Update, rebuilds the layout from
// a fresh tray snapshot, bumps the revision, and emits LayoutUpdated so
// hosts re-query.
//
// Only the D-Bus method set is exported; godbus exposes exactly those.
type menuObject struct {
	conn *dbus.Conn
	tray traykit.Tray
	log  *zap.Logger

	mu       sync.Mutex
	revision uint32
	root     *layoutNode
	actions  map[int32]func()
}

func newMenuObject(conn *dbus.Conn, tray traykit.Tray, log *zap.Logger) *menuObject {
	return &menuObject{
		conn: conn,
		tray: tray,
		log:  log,
	}
}

func (m *menuObject) export() error {
	if err := m.conn.Export(m, MenuPath, MenuInterface); err != nil {
		return fmt.Errorf("failed to export %s: %w", MenuInterface, err)
	}

	if _, err := prop.Export(m.conn, MenuPath, prop.Map{
		MenuInterface: map[string]*prop.Prop{
			"Version":       {Value: uint32(3), Emit: prop.EmitTrue},
			"Status":        {Value: "normal", Emit: prop.EmitTrue},
			"TextDirection": {Value: "ltr", Emit: prop.EmitTrue},
			"IconThemePath": {Value: themePaths(m.tray.IconThemePath()), Emit: prop.EmitTrue},
		},
	}); err != nil {
		return fmt.Errorf("failed to export %s properties: %w", MenuInterface, err)
	}

	m.rebuild(false)

	return nil
}

func themePaths(path string) []string {
	if path == "" {
		return []string{}
	}

	return []string{path}
}

// rebuild pulls a fresh menu snapshot from the tray and replaces the served
// layout. When emit is set, hosts are notified through LayoutUpdated.
//
// The menu lock is never held while the tray is queried: BuildMenu takes the
// tray state lock internally, and interaction closures do the same.
func (m *menuObject) rebuild(emit bool) {
	root, actions := buildLayout(m.tray.Menu())

	m.mu.Lock()
	m.revision++
	revision := m.revision
	m.root = root
	m.actions = actions
	m.mu.Unlock()

	if !emit {
		return
	}

	if err := m.conn.Emit(MenuPath, MenuInterface+".LayoutUpdated", revision, int32(0)); err != nil {
		m.log.Warn("failed to emit LayoutUpdated", zap.Error(err))
	}
}

// GetLayout provides the layout and the properties attached to the nodes in
// it, rooted at parentID (0 for the whole menu).
//
// recursionDepth limits how many levels of children are included: -1 means
// no limit, 0 disables recursion. propertyNames filters the returned
// properties; an empty slice returns all of them.
func (m *menuObject) GetLayout(parentID int32, recursionDepth int32, propertyNames []string) (uint32, layoutValue, *dbus.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	node := m.root.find(parentID)
	if node == nil {
		return m.revision, layoutValue{}, dbus.MakeFailedError(fmt.Errorf("layout: unknown node %d", parentID))
	}

	return m.revision, node.value(recursionDepth, propertyNames), nil
}

// GetGroupProperties returns the properties of the requested nodes. An empty
// ids slice requests all nodes.
func (m *menuObject) GetGroupProperties(ids []int32, propertyNames []string) ([]nodeProperties, *dbus.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	nodes := make([]nodeProperties, 0, len(ids))

	if len(ids) == 0 {
		m.root.walk(func(n *layoutNode) {
			nodes = append(nodes, nodeProperties{
				ID:         n.id,
				Properties: filterProperties(n.properties, propertyNames),
			})
		})

		return nodes, nil
	}

	for _, id := range ids {
		node := m.root.find(id)
		if node == nil {
			continue
		}

		nodes = append(nodes, nodeProperties{
			ID:         node.id,
			Properties: filterProperties(node.properties, propertyNames),
		})
	}

	return nodes, nil
}

// GetProperty returns a single property of a single node.
func (m *menuObject) GetProperty(id int32, name string) (dbus.Variant, *dbus.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	node := m.root.find(id)
	if node == nil {
		return dbus.Variant{}, dbus.MakeFailedError(fmt.Errorf("property: unknown node %d", id))
	}

	value, ok := node.properties[name]
	if !ok {
		return dbus.Variant{}, dbus.MakeFailedError(fmt.Errorf("property: node %d has no property %s", id, name))
	}

	return value, nil
}

// Event is called by the host when an event happens to a menu node. Only
// "clicked" dispatches interaction; hover and open/close events carry no
// state here.
func (m *menuObject) Event(id int32, eventID string, data dbus.Variant, timestamp uint32) *dbus.Error {
	if eventID != "clicked" {
		return nil
	}

	m.mu.Lock()
	activate := m.actions[id]
	m.mu.Unlock()

	if activate == nil {
		return dbus.MakeFailedError(fmt.Errorf("event: unknown node %d", id))
	}

	// The closure locks the tray state, applies the mutation, releases the
	// lock, and then queues the outcome event. No menu lock is held here,
	// so re-entry through a tray query cannot deadlock.
	activate()

	m.rebuild(true)

	return nil
}

// menuEvent is one element of the EventGroup argument, signature (isvu).
type menuEvent struct {
	ID        int32
	EventID   string
	Data      dbus.Variant
	Timestamp uint32
}

// EventGroup dispatches a batch of events and returns the ids that were not
// found in the layout.
func (m *menuObject) EventGroup(events []menuEvent) ([]int32, *dbus.Error) {
	idErrors := []int32{}
	clicked := false

	for _, event := range events {
		if event.EventID != "clicked" {
			continue
		}

		m.mu.Lock()
		activate := m.actions[event.ID]
		m.mu.Unlock()

		if activate == nil {
			idErrors = append(idErrors, event.ID)
			continue
		}

		activate()
		clicked = true
	}

	if clicked {
		m.rebuild(true)
	}

	return idErrors, nil
}

// AboutToShow is called when a node is about to be shown. The layout is kept
// current eagerly, so hosts never need a refresh here.
func (m *menuObject) AboutToShow(id int32) (bool, *dbus.Error) {
	return false, nil
}

// AboutToShowGroup is the batch form of AboutToShow.
func (m *menuObject) AboutToShowGroup(ids []int32) ([]int32, []int32, *dbus.Error) {
	return []int32{}, []int32{}, nil
}
