package traykit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDefaults(t *testing.T) {
	s := NewState("my_app")

	assert.Equal(t, "my_app", s.TrayID())
	assert.Equal(t, "application-x-executable", s.IconName())
	assert.Equal(t, "Tray Icon", s.Title())
	assert.Empty(t, s.IconPixmap())
}

func TestStateAppearance(t *testing.T) {
	s := NewState("app")

	s.SetTrayID("other")
	s.SetIconName("help-about")
	s.SetIconThemePath("/usr/share/icons")
	s.SetTitle("Title")
	s.SetToolTip(ToolTip{IconName: "info", Title: "Tip", Description: "More"})

	assert.Equal(t, "other", s.TrayID())
	assert.Equal(t, "help-about", s.IconName())
	assert.Equal(t, "/usr/share/icons", s.IconThemePath())
	assert.Equal(t, "Title", s.Title())
	assert.Equal(t, ToolTip{IconName: "info", Title: "Tip", Description: "More"}, s.ToolTip())
}

func TestStateIconPixmap(t *testing.T) {
	t.Run("stores converted pixmap and clears icon name", func(t *testing.T) {
		s := NewState("app")

		data := make([]byte, 2*2*4)
		require.NoError(t, s.SetIconFromRGBA(2, 2, data))

		pixmaps := s.IconPixmap()
		require.Len(t, pixmaps, 1)
		assert.Equal(t, int32(2), pixmaps[0].Width)
		assert.Equal(t, int32(2), pixmaps[0].Height)
		assert.Len(t, pixmaps[0].Bytes, 16)
		assert.Empty(t, s.IconName())
	})

	t.Run("rejects length mismatch and leaves state unchanged", func(t *testing.T) {
		s := NewState("app")

		err := s.SetIconFromRGBA(2, 2, make([]byte, 15))
		require.Error(t, err)
		assert.Empty(t, s.IconPixmap())
		assert.Equal(t, "application-x-executable", s.IconName())
	})

	t.Run("rejects non-positive dimensions", func(t *testing.T) {
		s := NewState("app")

		assert.Error(t, s.SetIconFromRGBA(0, 2, nil))
		assert.Error(t, s.SetIconFromRGBA(2, -1, nil))
		assert.Empty(t, s.IconPixmap())
	})

	t.Run("clear restores name-based lookup", func(t *testing.T) {
		s := NewState("app")

		require.NoError(t, s.SetIconFromRGBA(1, 1, make([]byte, 4)))
		s.ClearIconPixmap()
		assert.Empty(t, s.IconPixmap())
	})

	t.Run("returned pixmaps are copies", func(t *testing.T) {
		s := NewState("app")

		require.NoError(t, s.SetIconFromRGBA(1, 1, []byte{1, 2, 3, 4}))

		first := s.IconPixmap()
		first[0].Bytes[0] = 99

		second := s.IconPixmap()
		assert.NotEqual(t, byte(99), second[0].Bytes[0])
	})
}

func TestStateMenuConstruction(t *testing.T) {
	t.Run("radio option requires existing group", func(t *testing.T) {
		s := NewState("app")

		assert.False(t, s.AddRadioOption("g", "x", "X", "", true, true))

		s.AddRadioGroup("g", 0)
		assert.True(t, s.AddRadioOption("g", "x", "X", "", true, true))
	})

	t.Run("submenu entries require existing submenu", func(t *testing.T) {
		s := NewState("app")

		assert.False(t, s.AddSubMenuItem("S", "a", "A", "", true, true))

		s.BeginSubMenu("S", "", true, true)
		assert.True(t, s.AddSubMenuItem("S", "a", "A", "", true, true))
		assert.True(t, s.AddSubMenuCheckmark("S", "b", "B", "", false, true, true))
		assert.True(t, s.AddSubMenuSeparator("S"))
		assert.False(t, s.AddSubMenuSeparator("T"))
	})

	t.Run("clear removes all entries", func(t *testing.T) {
		s := NewState("app")

		s.AddItem("a", "A", "", true, true)
		s.AddSeparator()
		s.ClearMenu()

		assert.Empty(t, s.BuildMenu())
	})
}

func TestStateInteractionMutators(t *testing.T) {
	t.Run("toggle flips nested checkmark", func(t *testing.T) {
		s := NewState("app")
		s.BeginSubMenu("S", "", true, true)
		require.True(t, s.AddSubMenuCheckmark("S", "c", "C", "", false, true, true))

		checked, ok := s.ToggleCheckmark("c")
		require.True(t, ok)
		assert.True(t, checked)

		checked, ok = s.ToggleCheckmark("c")
		require.True(t, ok)
		assert.False(t, checked)
	})

	t.Run("toggle of unknown id reports not found", func(t *testing.T) {
		s := NewState("app")
		s.AddCheckmark("c", "C", "", false, true, true)

		_, ok := s.ToggleCheckmark("missing")
		assert.False(t, ok)
	})

	t.Run("select radio returns the option id", func(t *testing.T) {
		s := NewState("app")
		s.AddRadioGroup("g", 0)
		require.True(t, s.AddRadioOption("g", "x", "X", "", true, true))
		require.True(t, s.AddRadioOption("g", "y", "Y", "", true, true))

		optionID, ok := s.SelectRadio("g", 1)
		require.True(t, ok)
		assert.Equal(t, "y", optionID)
	})

	t.Run("programmatic setters report lookup result", func(t *testing.T) {
		s := NewState("app")
		s.AddCheckmark("c", "C", "", false, true, true)
		s.AddRadioGroup("g", 0)
		require.True(t, s.AddRadioOption("g", "x", "X", "", true, true))

		assert.True(t, s.SetCheckmarkState("c", true))
		assert.False(t, s.SetCheckmarkState("nope", true))
		assert.True(t, s.SetRadioSelected("g", 0))
		assert.False(t, s.SetRadioSelected("g", 3))
	})
}
