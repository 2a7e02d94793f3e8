package traykit

import (
	"errors"
	"fmt"
	"sync"
)

// ErrAlreadySpawned is returned by [TrayIcon.Spawn] when the presentation
// layer has already been launched for this tray. Re-spawning onto the same
// identity is not supported.
var ErrAlreadySpawned = errors.New("tray already spawned")

// Spawner launches a presentation layer for a tray. Implementations own the
// thread that renders the tray and invokes callbacks; package traykit/sni
// provides the StatusNotifierItem implementation.
type Spawner interface {
	Spawn(tray Tray) (Handle, error)
}

// Handle refers to a live presentation layer instance.
type Handle interface {
	// Update runs mutate, then asks the presentation layer to re-pull the
	// tray queries. A nil mutate requests a plain refresh.
	Update(mutate func())

	// Close tears the presentation layer down.
	Close() error
}

// TrayIcon is the application-facing tray controller. It owns a [State],
// launches the presentation layer through its [Spawner], and collects
// interaction events for the application to drain once per polling tick.
//
// All [State] operations are promoted, so a TrayIcon is configured directly:
//
//	tray := traykit.New("my_app", spawner)
//	tray.SetTitle("My App")
//	tray.AddItem("quit", "Quit", "", true, true)
type TrayIcon struct {
	*State

	spawner Spawner

	mu     sync.Mutex
	handle Handle
	events *eventQueue
}

// New returns a new [TrayIcon] with the given tray identifier.
func New(trayID string, spawner Spawner) *TrayIcon {
	return &TrayIcon{
		State:   NewState(trayID),
		spawner: spawner,
	}
}

// Spawn launches the presentation layer. It attaches a fresh event sender to
// the state and hands the spawner a [Bridge] over it.
//
// Spawn is one-shot: once it has succeeded, further calls return
// [ErrAlreadySpawned]. After a failed attempt it may be called again.
func (t *TrayIcon) Spawn() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.handle != nil {
		return ErrAlreadySpawned
	}

	queue := newEventQueue()
	t.State.attachEvents(queue)

	handle, err := t.spawner.Spawn(NewBridge(t.State))
	if err != nil {
		return fmt.Errorf("spawn: %w", err)
	}

	t.events = queue
	t.handle = handle

	return nil
}

// Update asks the presentation layer to re-pull the tray state. Call it
// after programmatic mutation so the change becomes visible. Before spawn it
// is a no-op.
func (t *TrayIcon) Update() {
	t.mu.Lock()
	handle := t.handle
	t.mu.Unlock()

	if handle != nil {
		handle.Update(nil)
	}
}

// DrainEvents removes and returns all pending interaction events in the
// order the callbacks fired. It never blocks; when no events are pending, or
// the tray has not been spawned, it returns nil.
func (t *TrayIcon) DrainEvents() []Event {
	t.mu.Lock()
	queue := t.events
	t.mu.Unlock()

	if queue == nil {
		return nil
	}

	return queue.drain()
}

// Close tears down the presentation layer, if it was spawned.
func (t *TrayIcon) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.handle == nil {
		return nil
	}

	err := t.handle.Close()
	t.handle = nil

	return err
}
