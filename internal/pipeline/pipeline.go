// Package pipeline implements process_event, the single entry point that
// consumes one physical KeyEvent plus the current device state and produces
// a deterministic, possibly-empty sequence of output KeyEvents.
package pipeline

import (
	"github.com/bnema/keyrd/internal/event"
	"github.com/bnema/keyrd/internal/keycode"
	"github.com/bnema/keyrd/internal/lookup"
	"github.com/bnema/keyrd/internal/mapping"
	"github.com/bnema/keyrd/internal/state"
	"github.com/bnema/keyrd/internal/taphold"
)

// leftModifierKeys returns, for a ModifiedOutput rule, the L-side modifier
// key codes to press/release in Shift, Ctrl, Alt, Meta order, filtered to
// only the flags that are set.
func leftModifierKeys(b mapping.BaseKeyMapping) []keycode.KeyCode {
	var keys []keycode.KeyCode
	if b.Shift {
		keys = append(keys, keycode.LShift)
	}
	if b.Ctrl {
		keys = append(keys, keycode.LCtrl)
	}
	if b.Alt {
		keys = append(keys, keycode.LAlt)
	}
	if b.Win {
		keys = append(keys, keycode.LMeta)
	}
	return keys
}

func reversed(keys []keycode.KeyCode) []keycode.KeyCode {
	out := make([]keycode.KeyCode, len(keys))
	for i, k := range keys {
		out[len(keys)-1-i] = k
	}
	return out
}

// applyTapHoldOutputs converts a slice of taphold.Output into KeyEvents
// (appended to events) and direct DeviceState mutations, using ev as the
// template for timestamp and device ID on any synthesized KeyEvent.
func applyTapHoldOutputs(outs []taphold.Output, ev event.KeyEvent, s *state.DeviceState, events *[]event.KeyEvent) {
	for _, o := range outs {
		switch o.Kind {
		case taphold.OutKeyEvent:
			ke := ev.WithKeyCode(o.Key).WithTimestamp(o.TimestampUs)
			if o.IsPress {
				ke.Type = event.Press
			} else {
				ke.Type = event.Release
			}
			*events = append(*events, ke)
		case taphold.OutActivateModifier:
			s.SetModifier(mapping.ModifierID(o.ModifierID))
		case taphold.OutDeactivateModifier:
			s.ClearModifier(mapping.ModifierID(o.ModifierID))
		}
	}
}

func tapHoldConfigFor(b mapping.BaseKeyMapping) taphold.Config {
	return taphold.NewConfigMs(b.Tap, uint8(b.HoldModifier), b.ThresholdMs)
}

// ProcessEvent is the core algorithm: lookup, permissive-hold prefix,
// mandatory re-lookup, dispatch, and press tracking, in that exact order.
// The step ordering is load-bearing: the re-lookup runs only after a
// permissive hold fires, so the mapping it returns sees the hold modifier
// that was just activated.
func ProcessEvent(ev event.KeyEvent, idx *lookup.Index, s *state.DeviceState) []event.KeyEvent {
	inputKey := ev.KeyCode
	isPress := ev.IsPress()

	// Release short-circuit: a tracked multi-key press releases in the
	// exact reverse order it was pressed, regardless of the current mapping.
	if !isPress {
		tracked := s.GetReleaseKey(inputKey)
		s.ClearPress(inputKey)
		if !(len(tracked) == 1 && tracked[0] == inputKey) {
			out := make([]event.KeyEvent, 0, len(tracked))
			for i := len(tracked) - 1; i >= 0; i-- {
				out = append(out, ev.WithKeyCode(tracked[i]))
			}
			return out
		}
	}

	mapping1, ok1 := idx.Lookup(inputKey, s)

	var prefix []event.KeyEvent
	permissiveHoldTriggered := false
	if isPress && !(ok1 && mapping1.Kind == mapping.TapHold) && s.TapHold().HasPendingKeys() {
		outs := s.TapHold().ProcessOtherKeyPress(inputKey)
		if len(outs) > 0 {
			permissiveHoldTriggered = true
			applyTapHoldOutputs(outs, ev, s, &prefix)
		}
	}

	mapping2, ok2 := mapping1, ok1
	if permissiveHoldTriggered {
		mapping2, ok2 = idx.Lookup(inputKey, s)
	}

	dispatch := dispatchMapping(ev, isPress, inputKey, mapping2, ok2, s)

	if isPress && len(dispatch) > 0 {
		var pressedOutputs []keycode.KeyCode
		for _, e := range dispatch {
			if e.IsPress() {
				pressedOutputs = append(pressedOutputs, e.KeyCode)
			}
		}
		if !(len(pressedOutputs) == 1 && pressedOutputs[0] == inputKey) {
			s.RecordPress(inputKey, pressedOutputs)
		}
	}

	return append(prefix, dispatch...)
}

func dispatchMapping(ev event.KeyEvent, isPress bool, inputKey keycode.KeyCode, b mapping.BaseKeyMapping, ok bool, s *state.DeviceState) []event.KeyEvent {
	if !ok {
		return []event.KeyEvent{ev}
	}

	switch b.Kind {
	case mapping.Simple:
		return []event.KeyEvent{ev.WithKeyCode(b.To)}

	case mapping.Modifier:
		if isPress {
			s.SetModifier(b.ModifierID)
		} else {
			s.ClearModifier(b.ModifierID)
		}
		return nil

	case mapping.Lock:
		if isPress {
			s.ToggleLock(b.LockID)
		}
		return nil

	case mapping.TapHold:
		cfg := tapHoldConfigFor(b)
		if !s.TapHold().IsTapHoldKey(inputKey) {
			s.TapHold().RegisterTapHold(inputKey, cfg)
		}
		var outs []taphold.Output
		if isPress {
			outs = s.TapHold().ProcessPress(inputKey, ev.TimestampUs)
		} else {
			outs = s.TapHold().ProcessRelease(inputKey, ev.TimestampUs)
		}
		var events []event.KeyEvent
		applyTapHoldOutputs(outs, ev, s, &events)
		return events

	case mapping.ModifiedOutput:
		mods := leftModifierKeys(b)
		if isPress {
			events := make([]event.KeyEvent, 0, len(mods)+1)
			for _, m := range mods {
				events = append(events, ev.WithKeyCode(m))
			}
			events = append(events, ev.WithKeyCode(b.To))
			return events
		}
		events := make([]event.KeyEvent, 0, len(mods)+1)
		events = append(events, ev.WithKeyCode(b.To))
		for _, m := range reversed(mods) {
			events = append(events, ev.WithKeyCode(m))
		}
		return events

	default:
		return []event.KeyEvent{ev}
	}
}

// CheckTimeouts wraps the device's tap-hold processor timeout check, folding
// ActivateModifier outputs into state and returning any KeyEvents produced
// (the spec's tap-hold timeout transition never itself emits a KeyEvent, but
// the conversion is identical in shape to process_event's).
func CheckTimeouts(nowUs uint64, s *state.DeviceState) []event.KeyEvent {
	outs := s.TapHold().CheckTimeouts(nowUs)
	var events []event.KeyEvent
	applyTapHoldOutputs(outs, event.KeyEvent{TimestampUs: nowUs}, s, &events)
	return events
}
