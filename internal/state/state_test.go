package state

import (
	"testing"

	"github.com/bnema/keyrd/internal/keycode"
	"github.com/bnema/keyrd/internal/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModifierSetClearIsActive(t *testing.T) {
	s := New(4)
	assert.False(t, s.IsModifierActive(1), "expected modifier 1 to start inactive")

	s.SetModifier(1)
	assert.True(t, s.IsModifierActive(1))

	s.SetModifier(1)
	assert.True(t, s.IsModifierActive(1), "expected SetModifier to be idempotent")

	s.ClearModifier(1)
	assert.False(t, s.IsModifierActive(1))

	s.ClearModifier(1)
	assert.False(t, s.IsModifierActive(1), "expected ClearModifier on an already-inactive modifier to be a no-op")
}

func TestModifiersAreIndependent(t *testing.T) {
	s := New(4)
	s.SetModifier(1)
	assert.False(t, s.IsModifierActive(2), "expected modifier 2 to be unaffected by activating modifier 1")

	s.SetModifier(254)
	assert.True(t, s.IsModifierActive(254))
	assert.False(t, s.IsModifierActive(253), "expected the top of the ID range to be addressable independently")
}

func TestLockToggle(t *testing.T) {
	s := New(4)
	assert.False(t, s.IsLockActive(1), "expected lock 1 to start inactive")

	s.ToggleLock(1)
	assert.True(t, s.IsLockActive(1))

	s.ToggleLock(1)
	assert.False(t, s.IsLockActive(1))
}

func TestRecordPressAndGetReleaseKey(t *testing.T) {
	s := New(4)
	s.RecordPress(keycode.A, []keycode.KeyCode{keycode.LShift, keycode.B})
	assert.Equal(t, []keycode.KeyCode{keycode.LShift, keycode.B}, s.GetReleaseKey(keycode.A))
}

func TestGetReleaseKeyUntrackedIsPassthrough(t *testing.T) {
	s := New(4)
	assert.Equal(t, []keycode.KeyCode{keycode.A}, s.GetReleaseKey(keycode.A))
}

func TestRecordPressEmptyIsIgnored(t *testing.T) {
	s := New(4)
	s.RecordPress(keycode.A, []keycode.KeyCode{keycode.B})
	s.RecordPress(keycode.A, nil)
	assert.Equal(t, []keycode.KeyCode{keycode.B}, s.GetReleaseKey(keycode.A),
		"expected recording an empty output slice to leave the prior tracking entry untouched")
}

func TestRecordPressCopiesSlice(t *testing.T) {
	s := New(4)
	outputs := []keycode.KeyCode{keycode.A, keycode.B}
	s.RecordPress(keycode.CapsLock, outputs)
	outputs[0] = keycode.C
	assert.Equal(t, []keycode.KeyCode{keycode.A, keycode.B}, s.GetReleaseKey(keycode.CapsLock),
		"expected RecordPress to defensively copy its input")
}

func TestClearPress(t *testing.T) {
	s := New(4)
	s.RecordPress(keycode.A, []keycode.KeyCode{keycode.B})
	s.ClearPress(keycode.A)
	assert.Equal(t, []keycode.KeyCode{keycode.A}, s.GetReleaseKey(keycode.A),
		"expected ClearPress to remove the tracking entry")
}

func TestTapHoldReturnsUsableProcessor(t *testing.T) {
	s := New(2)
	require.NotNil(t, s.TapHold())
	assert.Equal(t, 2, s.TapHold().Capacity())
}

func TestDeviceStateSatisfiesConditionState(t *testing.T) {
	var _ mapping.ConditionState = New(4)
}
