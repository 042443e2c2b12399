// Package state holds per-device runtime state: active modifier and lock
// bitsets, the press-tracking table that guarantees release symmetry, and
// the device's tap-hold processor. DeviceState is owned exclusively by the
// pipeline driving one device; it is never shared across devices.
package state

import (
	"github.com/bnema/keyrd/internal/keycode"
	"github.com/bnema/keyrd/internal/mapping"
	"github.com/bnema/keyrd/internal/taphold"
)

const bitsetWords = 4 // 4 * 64 = 256 bits, enough for IDs in [0, 254]

type bitset [bitsetWords]uint64

func (b *bitset) set(id uint8)     { b[id/64] |= 1 << (id % 64) }
func (b *bitset) clear(id uint8)   { b[id/64] &^= 1 << (id % 64) }
func (b *bitset) isSet(id uint8) bool {
	return b[id/64]&(1<<(id%64)) != 0
}

// DeviceState is the process-wide runtime state for one configured device.
// It satisfies mapping.ConditionState so the lookup index can evaluate
// conditions against it directly.
type DeviceState struct {
	activeModifiers bitset
	activeLocks     bitset
	pressTracking   map[keycode.KeyCode][]keycode.KeyCode
	tapHold         *taphold.Processor
}

// New builds an empty DeviceState with a tap-hold processor of the given
// capacity. capacity <= 0 uses taphold.DefaultCapacity.
func New(tapHoldCapacity int) *DeviceState {
	return &DeviceState{
		pressTracking: make(map[keycode.KeyCode][]keycode.KeyCode),
		tapHold:       taphold.NewProcessor(tapHoldCapacity),
	}
}

// SetModifier activates modifier id. Idempotent.
func (s *DeviceState) SetModifier(id mapping.ModifierID) {
	s.activeModifiers.set(uint8(id))
}

// ClearModifier deactivates modifier id. A no-op if it was already inactive.
func (s *DeviceState) ClearModifier(id mapping.ModifierID) {
	s.activeModifiers.clear(uint8(id))
}

// IsModifierActive reports whether modifier id is currently active.
// Satisfies mapping.ConditionState.
func (s *DeviceState) IsModifierActive(id mapping.ModifierID) bool {
	return s.activeModifiers.isSet(uint8(id))
}

// ToggleLock flips lock id's latched state.
func (s *DeviceState) ToggleLock(id mapping.LockID) {
	if s.activeLocks.isSet(uint8(id)) {
		s.activeLocks.clear(uint8(id))
	} else {
		s.activeLocks.set(uint8(id))
	}
}

// IsLockActive reports whether lock id is currently latched. Satisfies
// mapping.ConditionState.
func (s *DeviceState) IsLockActive(id mapping.LockID) bool {
	return s.activeLocks.isSet(uint8(id))
}

// RecordPress stores the output key codes a physical press of inputKey
// produced, so the matching release can reproduce them even if the active
// mapping changes in between. Storing an empty list is a caller error and is
// silently ignored, preserving the invariant that a tracking entry, if
// present, is never empty.
func (s *DeviceState) RecordPress(inputKey keycode.KeyCode, outputs []keycode.KeyCode) {
	if len(outputs) == 0 {
		return
	}
	cp := make([]keycode.KeyCode, len(outputs))
	copy(cp, outputs)
	s.pressTracking[inputKey] = cp
}

// GetReleaseKey returns the tracked output keys for inputKey, or the
// singleton [inputKey] if nothing was tracked (untracked passthrough).
func (s *DeviceState) GetReleaseKey(inputKey keycode.KeyCode) []keycode.KeyCode {
	if outputs, ok := s.pressTracking[inputKey]; ok {
		return outputs
	}
	return []keycode.KeyCode{inputKey}
}

// ClearPress erases inputKey's tracking entry, if any.
func (s *DeviceState) ClearPress(inputKey keycode.KeyCode) {
	delete(s.pressTracking, inputKey)
}

// TapHold returns the device's tap-hold processor.
func (s *DeviceState) TapHold() *taphold.Processor {
	return s.tapHold
}
