// Package traykit maintains a live, mutable system tray description (icon,
// title, tooltip, and a hierarchical menu) and bridges user interaction back
// to the owning application. It implements the application (client) side of
// the [StatusNotifierItem] specification: the application configures a
// [TrayIcon], a presentation layer renders it and invokes callbacks, and the
// application drains the resulting events on its own schedule.
//
// # Usage
//
// The package is built around three pieces:
//   - [State] holds the tray appearance and the menu tree. It is safe for
//     concurrent use; the application mutates it freely both before and after
//     the tray is shown.
//   - [TrayIcon] wraps a [State] together with a [Spawner]. Spawn launches the
//     presentation layer exactly once, Update asks it to re-read the state
//     after programmatic changes, and DrainEvents collects pending interaction
//     outcomes without blocking.
//   - [Spawner] and [Handle] abstract the presentation layer itself. Package
//     traykit/sni provides the D-Bus implementation for Linux desktops.
//
// A minimal application:
//
//	tray := traykit.New("my_app", sni.Spawner{})
//	tray.SetTitle("My Application")
//	tray.AddItem("quit", "Quit", "application-exit", true, true)
//
//	if err := tray.Spawn(); err != nil {
//		// no tray host available
//	}
//
//	for range ticker.C {
//		for _, event := range tray.DrainEvents() {
//			switch e := event.(type) {
//			case traykit.Activated:
//				// e.ID was clicked
//			}
//		}
//	}
//
// [StatusNotifierItem]: https://www.freedesktop.org/wiki/Specifications/StatusNotifierItem/
package traykit
