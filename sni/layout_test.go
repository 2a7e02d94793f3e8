package sni

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traykit"
)

func fixtureMenu(activated *[]string) []traykit.Item {
	record := func(id string) func() {
		return func() {
			*activated = append(*activated, id)
		}
	}

	return []traykit.Item{
		traykit.StandardItem{Label: "Open", IconName: "document-open", Enabled: true, Visible: true, Activate: record("open")},
		traykit.CheckmarkItem{Label: "Mute", Enabled: true, Visible: true, Checked: true, Activate: record("mute")},
		traykit.SeparatorItem{},
		traykit.RadioGroupItem{
			Selected: 1,
			Options: []traykit.RadioOptionItem{
				{Label: "Low", Enabled: true, Visible: true},
				{Label: "High", Enabled: true, Visible: true},
			},
			Select: func(index int) {
				if index == 0 {
					*activated = append(*activated, "low")
				} else {
					*activated = append(*activated, "high")
				}
			},
		},
		traykit.SubMenuItem{
			Label:   "More",
			Enabled: true,
			Visible: true,
			Children: []traykit.Item{
				traykit.StandardItem{Label: "About", Enabled: true, Visible: false, Activate: record("about")},
			},
		},
	}
}

func TestBuildLayout(t *testing.T) {
	var activated []string
	root, actions := buildLayout(fixtureMenu(&activated))

	t.Run("root is node zero with submenu display", func(t *testing.T) {
		assert.Equal(t, int32(0), root.id)
		assert.Equal(t, dbus.MakeVariant("submenu"), root.properties["children-display"])
	})

	t.Run("assigns depth-first ids and flattens radio options", func(t *testing.T) {
		// Standard, checkmark, separator, two radio options, submenu.
		require.Len(t, root.children, 6)
		for i, child := range root.children {
			assert.Equal(t, int32(i+1), child.id)
		}

		submenu := root.children[5]
		require.Len(t, submenu.children, 1)
		assert.Equal(t, int32(7), submenu.children[0].id)
	})

	t.Run("maps entry properties", func(t *testing.T) {
		standard := root.children[0]
		assert.Equal(t, dbus.MakeVariant("Open"), standard.properties["label"])
		assert.Equal(t, dbus.MakeVariant("document-open"), standard.properties["icon-name"])
		assert.NotContains(t, standard.properties, "enabled")
		assert.NotContains(t, standard.properties, "visible")

		check := root.children[1]
		assert.Equal(t, dbus.MakeVariant("checkmark"), check.properties["toggle-type"])
		assert.Equal(t, dbus.MakeVariant(int32(1)), check.properties["toggle-state"])

		separator := root.children[2]
		assert.Equal(t, dbus.MakeVariant("separator"), separator.properties["type"])

		low, high := root.children[3], root.children[4]
		assert.Equal(t, dbus.MakeVariant("radio"), low.properties["toggle-type"])
		assert.Equal(t, dbus.MakeVariant(int32(0)), low.properties["toggle-state"])
		assert.Equal(t, dbus.MakeVariant(int32(1)), high.properties["toggle-state"])

		hidden := root.children[5].children[0]
		assert.Equal(t, dbus.MakeVariant(false), hidden.properties["visible"])
	})

	t.Run("actions dispatch to the right closures", func(t *testing.T) {
		activated = nil

		actions[1]()
		actions[2]()
		actions[3]()
		actions[4]()
		actions[7]()

		assert.Equal(t, []string{"open", "mute", "low", "high", "about"}, activated)
	})

	t.Run("separator and submenu have no actions", func(t *testing.T) {
		assert.NotContains(t, actions, int32(5))
		assert.NotContains(t, actions, int32(6))
	})
}

func TestLayoutNodeFind(t *testing.T) {
	var activated []string
	root, _ := buildLayout(fixtureMenu(&activated))

	assert.Equal(t, root, root.find(0))
	require.NotNil(t, root.find(7))
	assert.Equal(t, int32(7), root.find(7).id)
	assert.Nil(t, root.find(42))

	var nilNode *layoutNode
	assert.Nil(t, nilNode.find(0))
}

func TestLayoutNodeValue(t *testing.T) {
	var activated []string
	root, _ := buildLayout(fixtureMenu(&activated))

	t.Run("depth zero omits children", func(t *testing.T) {
		value := root.value(0, nil)
		assert.Equal(t, int32(0), value.ID)
		assert.Empty(t, value.Children)
	})

	t.Run("depth one stops below the first level", func(t *testing.T) {
		value := root.value(1, nil)
		require.Len(t, value.Children, 6)

		var submenu layoutValue
		require.NoError(t, value.Children[5].Store(&submenu))
		assert.Empty(t, submenu.Children)
	})

	t.Run("negative depth serializes everything", func(t *testing.T) {
		value := root.value(-1, nil)
		require.Len(t, value.Children, 6)

		var submenu layoutValue
		require.NoError(t, value.Children[5].Store(&submenu))
		assert.Len(t, submenu.Children, 1)
	})

	t.Run("property names filter the map", func(t *testing.T) {
		value := root.children[0].value(0, []string{"label"})
		assert.Equal(t, map[string]dbus.Variant{"label": dbus.MakeVariant("Open")}, value.Properties)
	})
}

func TestFilterProperties(t *testing.T) {
	properties := map[string]dbus.Variant{
		"label":   dbus.MakeVariant("A"),
		"enabled": dbus.MakeVariant(false),
	}

	t.Run("empty filter copies everything", func(t *testing.T) {
		filtered := filterProperties(properties, nil)
		assert.Equal(t, properties, filtered)

		filtered["label"] = dbus.MakeVariant("B")
		assert.Equal(t, dbus.MakeVariant("A"), properties["label"])
	})

	t.Run("keeps only named properties", func(t *testing.T) {
		filtered := filterProperties(properties, []string{"label", "missing"})
		assert.Equal(t, map[string]dbus.Variant{"label": dbus.MakeVariant("A")}, filtered)
	})
}

func TestWalk(t *testing.T) {
	var activated []string
	root, _ := buildLayout(fixtureMenu(&activated))

	var ids []int32
	root.walk(func(n *layoutNode) {
		ids = append(ids, n.id)
	})

	assert.Equal(t, []int32{0, 1, 2, 3, 4, 5, 6, 7}, ids)
}
