package sni

import (
	"github.com/godbus/dbus/v5"

	"traykit"
)

// layoutNode is one node of the served dbusmenu layout. Node 0 is the root;
// item nodes are numbered depth-first from 1 in menu order.
type layoutNode struct {
	id         int32
	properties map[string]dbus.Variant
	children   []*layoutNode
}

// layoutValue is the wire form of a layout subtree, signature (ia{sv}av).
type layoutValue struct {
	ID         int32
	Properties map[string]dbus.Variant
	Children   []dbus.Variant
}

// nodeProperties is one element of the GetGroupProperties reply, signature
// (ia{sv}).
type nodeProperties struct {
	ID         int32
	Properties map[string]dbus.Variant
}

// buildLayout converts a built menu snapshot into a dbusmenu layout and an
// activation table keyed by node id.
//
// Radio groups are flattened: each option becomes a sibling node with
// toggle-type "radio", and clicking it selects the option's index within its
// group. This mirrors how the protocol models radio items, which have no
// container node of their own.
func buildLayout(items []traykit.Item) (*layoutNode, map[int32]func()) {
	b := &layoutBuilder{actions: make(map[int32]func())}

	root := &layoutNode{
		id: 0,
		properties: map[string]dbus.Variant{
			"children-display": dbus.MakeVariant("submenu"),
		},
		children: b.build(items),
	}

	return root, b.actions
}

type layoutBuilder struct {
	next    int32
	actions map[int32]func()
}

func (b *layoutBuilder) nextID() int32 {
	b.next++
	return b.next
}

func (b *layoutBuilder) build(items []traykit.Item) []*layoutNode {
	nodes := make([]*layoutNode, 0, len(items))

	for _, item := range items {
		switch it := item.(type) {
		case traykit.StandardItem:
			node := &layoutNode{
				id:         b.nextID(),
				properties: entryProperties(it.Label, it.IconName, it.Enabled, it.Visible),
			}
			b.actions[node.id] = it.Activate
			nodes = append(nodes, node)

		case traykit.CheckmarkItem:
			node := &layoutNode{
				id:         b.nextID(),
				properties: entryProperties(it.Label, it.IconName, it.Enabled, it.Visible),
			}
			node.properties["toggle-type"] = dbus.MakeVariant("checkmark")
			node.properties["toggle-state"] = dbus.MakeVariant(toggleState(it.Checked))
			b.actions[node.id] = it.Activate
			nodes = append(nodes, node)

		case traykit.RadioGroupItem:
			sel := it.Select
			for i, option := range it.Options {
				node := &layoutNode{
					id:         b.nextID(),
					properties: entryProperties(option.Label, option.IconName, option.Enabled, option.Visible),
				}
				node.properties["toggle-type"] = dbus.MakeVariant("radio")
				node.properties["toggle-state"] = dbus.MakeVariant(toggleState(i == it.Selected))

				index := i
				b.actions[node.id] = func() {
					sel(index)
				}

				nodes = append(nodes, node)
			}

		case traykit.SubMenuItem:
			node := &layoutNode{
				id:         b.nextID(),
				properties: entryProperties(it.Label, it.IconName, it.Enabled, it.Visible),
			}
			node.properties["children-display"] = dbus.MakeVariant("submenu")
			node.children = b.build(it.Children)
			nodes = append(nodes, node)

		case traykit.SeparatorItem:
			nodes = append(nodes, &layoutNode{
				id: b.nextID(),
				properties: map[string]dbus.Variant{
					"type": dbus.MakeVariant("separator"),
				},
			})
		}
	}

	return nodes
}

// entryProperties builds the common property map of an interactive entry.
// Protocol defaults (enabled, visible) are omitted unless overridden.
func entryProperties(label, iconName string, enabled, visible bool) map[string]dbus.Variant {
	properties := make(map[string]dbus.Variant)

	if label != "" {
		properties["label"] = dbus.MakeVariant(label)
	}

	if iconName != "" {
		properties["icon-name"] = dbus.MakeVariant(iconName)
	}

	if !enabled {
		properties["enabled"] = dbus.MakeVariant(false)
	}

	if !visible {
		properties["visible"] = dbus.MakeVariant(false)
	}

	return properties
}

func toggleState(on bool) int32 {
	if on {
		return 1
	}

	return 0
}

// find returns the node with the given id, or nil.
func (n *layoutNode) find(id int32) *layoutNode {
	if n == nil {
		return nil
	}

	if n.id == id {
		return n
	}

	for _, child := range n.children {
		if found := child.find(id); found != nil {
			return found
		}
	}

	return nil
}

// walk visits every node in depth-first order.
func (n *layoutNode) walk(visit func(*layoutNode)) {
	if n == nil {
		return
	}

	visit(n)

	for _, child := range n.children {
		child.walk(visit)
	}
}

// value serializes the subtree rooted at n. depth limits recursion: -1 means
// unlimited, 0 returns the node without children.
func (n *layoutNode) value(depth int32, propertyNames []string) layoutValue {
	value := layoutValue{
		ID:         n.id,
		Properties: filterProperties(n.properties, propertyNames),
		Children:   []dbus.Variant{},
	}

	if depth == 0 {
		return value
	}

	childDepth := depth - 1
	if depth < 0 {
		childDepth = -1
	}

	for _, child := range n.children {
		value.Children = append(value.Children, dbus.MakeVariant(child.value(childDepth, propertyNames)))
	}

	return value
}

// filterProperties copies properties, keeping only the named ones. An empty
// name list keeps everything.
func filterProperties(properties map[string]dbus.Variant, names []string) map[string]dbus.Variant {
	filtered := make(map[string]dbus.Variant, len(properties))

	if len(names) == 0 {
		for key, value := range properties {
			filtered[key] = value
		}

		return filtered
	}

	for _, name := range names {
		if value, ok := properties[name]; ok {
			filtered[name] = value
		}
	}

	return filtered
}
