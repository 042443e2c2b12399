// Package mapping holds the pure-data description of one device's
// remapping rules: the typed rule variants and the conditional wrapper
// around them. It has no knowledge of runtime state or event processing —
// that lives in packages lookup, state, and pipeline.
package mapping

import "github.com/bnema/keyrd/internal/keycode"

// ModifierID identifies a custom, user-defined modifier layer. It is
// orthogonal to the eight physical modifier keys in package keycode.
type ModifierID uint8

// LockID identifies a custom toggle-on-press lock.
type LockID uint8

// ReservedID is never a valid ModifierID or LockID; loaders must reject it.
const ReservedID = 0xFF

// ConditionKind tags which variant a Condition holds.
type ConditionKind int

const (
	ModifierActive ConditionKind = iota
	LockActive
	AllActive
	NotActive
)

// ConditionItem is one ModifierActive or LockActive leaf inside an AllActive
// or NotActive list.
type ConditionItem struct {
	Kind       ConditionKind // must be ModifierActive or LockActive
	ModifierID ModifierID    // valid when Kind == ModifierActive
	LockID     LockID        // valid when Kind == LockActive
}

// Condition gates a conditional mapping. Exactly one of the fields is
// meaningful, selected by Kind.
type Condition struct {
	Kind       ConditionKind
	ModifierID ModifierID      // Kind == ModifierActive
	LockID     LockID          // Kind == LockActive
	Items      []ConditionItem // Kind == AllActive or NotActive
}

// ModifierActiveCondition builds a single-modifier condition.
func ModifierActiveCondition(id ModifierID) Condition {
	return Condition{Kind: ModifierActive, ModifierID: id}
}

// LockActiveCondition builds a single-lock condition.
func LockActiveCondition(id LockID) Condition {
	return Condition{Kind: LockActive, LockID: id}
}

// AllActiveCondition builds a logical-AND condition over items.
func AllActiveCondition(items ...ConditionItem) Condition {
	return Condition{Kind: AllActive, Items: items}
}

// NotActiveCondition builds a logical-NOR condition over items.
func NotActiveCondition(items ...ConditionItem) Condition {
	return Condition{Kind: NotActive, Items: items}
}

// ConditionState is the minimal read-only view of DeviceState a Condition
// needs to evaluate. package state's DeviceState satisfies this interface;
// it is declared here (rather than imported) to keep mapping free of any
// dependency on runtime state.
type ConditionState interface {
	IsModifierActive(id ModifierID) bool
	IsLockActive(id LockID) bool
}

// Satisfied evaluates c against the current device state.
func (c Condition) Satisfied(s ConditionState) bool {
	switch c.Kind {
	case ModifierActive:
		return s.IsModifierActive(c.ModifierID)
	case LockActive:
		return s.IsLockActive(c.LockID)
	case AllActive:
		for _, item := range c.Items {
			if !item.satisfied(s) {
				return false
			}
		}
		return true
	case NotActive:
		for _, item := range c.Items {
			if item.satisfied(s) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (i ConditionItem) satisfied(s ConditionState) bool {
	switch i.Kind {
	case ModifierActive:
		return s.IsModifierActive(i.ModifierID)
	case LockActive:
		return s.IsLockActive(i.LockID)
	default:
		return false
	}
}

// BaseKind tags which variant a BaseKeyMapping holds.
type BaseKind int

const (
	Simple BaseKind = iota
	Modifier
	Lock
	TapHold
	ModifiedOutput
)

// BaseKeyMapping is one base remapping rule. Exactly one group of fields is
// meaningful, selected by Kind; see the BaseKind constants.
type BaseKeyMapping struct {
	Kind BaseKind
	From keycode.KeyCode

	// Simple
	To keycode.KeyCode

	// Modifier
	ModifierID ModifierID

	// Lock
	LockID LockID

	// TapHold
	Tap           keycode.KeyCode
	HoldModifier  ModifierID
	ThresholdMs   uint16

	// ModifiedOutput (To above is the output key)
	Shift bool
	Ctrl  bool
	Alt   bool
	Win   bool
}

// NewSimple builds a Simple{from, to} rule.
func NewSimple(from, to keycode.KeyCode) BaseKeyMapping {
	return BaseKeyMapping{Kind: Simple, From: from, To: to}
}

// NewModifier builds a Modifier{from, modifier_id} rule.
func NewModifier(from keycode.KeyCode, id ModifierID) BaseKeyMapping {
	return BaseKeyMapping{Kind: Modifier, From: from, ModifierID: id}
}

// NewLock builds a Lock{from, lock_id} rule.
func NewLock(from keycode.KeyCode, id LockID) BaseKeyMapping {
	return BaseKeyMapping{Kind: Lock, From: from, LockID: id}
}

// NewTapHold builds a TapHold{from, tap, hold_modifier, threshold_ms} rule.
func NewTapHold(from, tap keycode.KeyCode, holdModifier ModifierID, thresholdMs uint16) BaseKeyMapping {
	return BaseKeyMapping{
		Kind:         TapHold,
		From:         from,
		Tap:          tap,
		HoldModifier: holdModifier,
		ThresholdMs:  thresholdMs,
	}
}

// NewModifiedOutput builds a ModifiedOutput{from, to, shift, ctrl, alt, win} rule.
func NewModifiedOutput(from, to keycode.KeyCode, shift, ctrl, alt, win bool) BaseKeyMapping {
	return BaseKeyMapping{
		Kind: ModifiedOutput, From: from, To: to,
		Shift: shift, Ctrl: ctrl, Alt: alt, Win: win,
	}
}

// KeyMapping is either a bare BaseKeyMapping or a Conditional layer wrapping
// an ordered list of BaseKeyMappings that apply only while Condition holds.
type KeyMapping struct {
	Conditional bool
	Condition   Condition        // meaningful when Conditional
	Base        BaseKeyMapping   // meaningful when !Conditional
	Mappings    []BaseKeyMapping // meaningful when Conditional
}

// NewBase wraps a single unconditional BaseKeyMapping.
func NewBase(b BaseKeyMapping) KeyMapping {
	return KeyMapping{Conditional: false, Base: b}
}

// NewConditional wraps an ordered list of BaseKeyMappings behind a Condition.
func NewConditional(cond Condition, mappings ...BaseKeyMapping) KeyMapping {
	return KeyMapping{Conditional: true, Condition: cond, Mappings: mappings}
}

// DeviceConfig is one physical device's ordered rule set.
type DeviceConfig struct {
	Identifier string
	Mappings   []KeyMapping
}

// ConfigRoot is the compiler's (or loader's) output: a versioned bundle of
// per-device configs. The core only ever reads DeviceConfig.Mappings; the
// remaining fields exist for provenance and cache-invalidation by the
// loader/profile layer.
type ConfigRoot struct {
	Version                 string
	CompilationTimestampUnix int64
	CompilerVersion         string
	SourceHash              string
	Devices                 []DeviceConfig
}
