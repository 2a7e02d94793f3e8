package traykit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSpawner struct {
	mock.Mock
}

func (s *mockSpawner) Spawn(tray Tray) (Handle, error) {
	args := s.Called(tray)

	handle := args.Get(0)
	if handle == nil {
		return nil, args.Error(1)
	}

	return handle.(Handle), args.Error(1)
}

type mockHandle struct {
	mock.Mock
}

func (h *mockHandle) Update(mutate func()) {
	h.Called(mutate)
}

func (h *mockHandle) Close() error {
	args := h.Called()
	return args.Error(0)
}

func TestTrayIconSpawn(t *testing.T) {
	t.Run("hands the spawner a bridge over the state", func(t *testing.T) {
		handle := new(mockHandle)
		spawner := new(mockSpawner)
		spawner.On("Spawn", mock.Anything).Return(handle, nil)

		tray := New("app", spawner)
		tray.SetTitle("Running")

		require.NoError(t, tray.Spawn())

		bridge := spawner.Calls[0].Arguments.Get(0).(Tray)
		assert.Equal(t, "app", bridge.ID())
		assert.Equal(t, "Running", bridge.Title())
		spawner.AssertExpectations(t)
	})

	t.Run("second spawn is rejected", func(t *testing.T) {
		handle := new(mockHandle)
		spawner := new(mockSpawner)
		spawner.On("Spawn", mock.Anything).Return(handle, nil).Once()

		tray := New("app", spawner)
		require.NoError(t, tray.Spawn())

		err := tray.Spawn()
		require.ErrorIs(t, err, ErrAlreadySpawned)
		spawner.AssertNumberOfCalls(t, "Spawn", 1)
	})

	t.Run("failed spawn may be retried", func(t *testing.T) {
		handle := new(mockHandle)
		spawner := new(mockSpawner)
		spawner.On("Spawn", mock.Anything).Return(nil, fmt.Errorf("no tray host")).Once()
		spawner.On("Spawn", mock.Anything).Return(handle, nil).Once()

		tray := New("app", spawner)
		require.Error(t, tray.Spawn())
		require.NoError(t, tray.Spawn())
		spawner.AssertExpectations(t)
	})
}

func TestTrayIconUpdate(t *testing.T) {
	t.Run("no-op before spawn", func(t *testing.T) {
		tray := New("app", new(mockSpawner))
		tray.Update()
	})

	t.Run("delegates to the handle", func(t *testing.T) {
		handle := new(mockHandle)
		handle.On("Update", mock.Anything).Return()

		spawner := new(mockSpawner)
		spawner.On("Spawn", mock.Anything).Return(handle, nil)

		tray := New("app", spawner)
		require.NoError(t, tray.Spawn())

		tray.Update()
		handle.AssertNumberOfCalls(t, "Update", 1)
	})
}

func TestTrayIconDrainEvents(t *testing.T) {
	t.Run("nil before spawn", func(t *testing.T) {
		tray := New("app", new(mockSpawner))
		assert.Nil(t, tray.DrainEvents())
	})

	t.Run("returns callback outcomes in firing order", func(t *testing.T) {
		handle := new(mockHandle)
		spawner := new(mockSpawner)
		spawner.On("Spawn", mock.Anything).Return(handle, nil)

		tray := New("app", spawner)
		tray.AddItem("open", "Open", "", true, true)
		tray.AddCheckmark("mute", "Mute", "", false, true, true)
		require.NoError(t, tray.Spawn())

		bridge := spawner.Calls[0].Arguments.Get(0).(Tray)
		items := bridge.Menu()

		items[0].(StandardItem).Activate()
		items[1].(CheckmarkItem).Activate()
		items[0].(StandardItem).Activate()

		events := tray.DrainEvents()
		require.Len(t, events, 3)
		assert.Equal(t, Activated{ID: "open"}, events[0])
		assert.Equal(t, CheckmarkToggled{ID: "mute", Checked: true}, events[1])
		assert.Equal(t, Activated{ID: "open"}, events[2])

		assert.Nil(t, tray.DrainEvents())
	})
}

func TestTrayIconClose(t *testing.T) {
	t.Run("nil handle is fine", func(t *testing.T) {
		tray := New("app", new(mockSpawner))
		assert.NoError(t, tray.Close())
	})

	t.Run("closes the handle once", func(t *testing.T) {
		handle := new(mockHandle)
		handle.On("Close").Return(nil).Once()

		spawner := new(mockSpawner)
		spawner.On("Spawn", mock.Anything).Return(handle, nil)

		tray := New("app", spawner)
		require.NoError(t, tray.Spawn())

		require.NoError(t, tray.Close())
		require.NoError(t, tray.Close())
		handle.AssertExpectations(t)
	})
}
