package profile

import (
	"fmt"
	"strings"

	"github.com/bnema/keyrd/internal/keycode"
	"github.com/bnema/keyrd/internal/mapping"
)

// tomlRoot is the on-disk shape of one profile file. It mirrors
// mapping.ConfigRoot but with human-typed key/modifier names instead of
// numeric codes, decoded and validated by tomlToRoot.
type tomlRoot struct {
	Version         string       `toml:"version"`
	CompilerVersion string       `toml:"compiler_version"`
	SourceHash      string       `toml:"source_hash"`
	Device          []tomlDevice `toml:"device"`
}

type tomlDevice struct {
	Identifier string        `toml:"identifier"`
	Mapping    []tomlMapping `toml:"mapping"`
}

// tomlMapping is either a bare base rule (Kind set directly) or a
// conditional wrapper (Condition set, Base holding the guarded rules).
type tomlMapping struct {
	Condition *tomlCondition `toml:"condition"`
	Base      []tomlBase     `toml:"base"`

	// Bare (unconditional) rule fields, used when Condition is nil.
	Kind         string `toml:"kind"`
	From         string `toml:"from"`
	To           string `toml:"to"`
	ModifierID   *int   `toml:"modifier_id"`
	LockID       *int   `toml:"lock_id"`
	Tap          string `toml:"tap"`
	HoldModifier *int   `toml:"hold_modifier"`
	ThresholdMs  int    `toml:"threshold_ms"`
	Shift        bool   `toml:"shift"`
	Ctrl         bool   `toml:"ctrl"`
	Alt          bool   `toml:"alt"`
	Win          bool   `toml:"win"`
}

type tomlCondition struct {
	Kind       string           `toml:"kind"` // modifier_active, lock_active, all_active, not_active
	ModifierID *int             `toml:"modifier_id"`
	LockID     *int             `toml:"lock_id"`
	Items      []tomlConditionItem `toml:"items"`
}

type tomlConditionItem struct {
	Kind       string `toml:"kind"` // modifier_active, lock_active
	ModifierID *int   `toml:"modifier_id"`
	LockID     *int   `toml:"lock_id"`
}

type tomlBase struct {
	Kind         string `toml:"kind"`
	From         string `toml:"from"`
	To           string `toml:"to"`
	ModifierID   *int   `toml:"modifier_id"`
	LockID       *int   `toml:"lock_id"`
	Tap          string `toml:"tap"`
	HoldModifier *int   `toml:"hold_modifier"`
	ThresholdMs  int    `toml:"threshold_ms"`
	Shift        bool   `toml:"shift"`
	Ctrl         bool   `toml:"ctrl"`
	Alt          bool   `toml:"alt"`
	Win          bool   `toml:"win"`
}

func keyCodeByName(name string) (keycode.KeyCode, error) {
	for kc := keycode.A; kc.Valid(); kc++ {
		if strings.EqualFold(kc.String(), name) {
			return kc, nil
		}
	}
	return keycode.Unknown, fmt.Errorf("unknown key name %q", name)
}

func idInRange(v *int, field string) (uint8, error) {
	if v == nil {
		return 0, fmt.Errorf("%s is required", field)
	}
	if *v < 0 || *v > 0xFE {
		return 0, fmt.Errorf("%s %d out of range [0, 254]", field, *v)
	}
	return uint8(*v), nil
}

func tomlToBase(b tomlBase) (mapping.BaseKeyMapping, error) {
	from, err := keyCodeByName(b.From)
	if err != nil {
		return mapping.BaseKeyMapping{}, fmt.Errorf("from: %w", err)
	}

	switch strings.ToLower(b.Kind) {
	case "simple":
		to, err := keyCodeByName(b.To)
		if err != nil {
			return mapping.BaseKeyMapping{}, fmt.Errorf("to: %w", err)
		}
		return mapping.NewSimple(from, to), nil

	case "modifier":
		id, err := idInRange(b.ModifierID, "modifier_id")
		if err != nil {
			return mapping.BaseKeyMapping{}, err
		}
		if from.IsPhysicalModifier() {
			return mapping.BaseKeyMapping{}, fmt.Errorf("modifier rule 'from' %s is a physical modifier", from)
		}
		return mapping.NewModifier(from, mapping.ModifierID(id)), nil

	case "lock":
		id, err := idInRange(b.LockID, "lock_id")
		if err != nil {
			return mapping.BaseKeyMapping{}, err
		}
		return mapping.NewLock(from, mapping.LockID(id)), nil

	case "tap_hold", "taphold":
		tap, err := keyCodeByName(b.Tap)
		if err != nil {
			return mapping.BaseKeyMapping{}, fmt.Errorf("tap: %w", err)
		}
		if tap.IsPhysicalModifier() {
			return mapping.BaseKeyMapping{}, fmt.Errorf("tap_hold 'tap' %s is a physical modifier", tap)
		}
		hold, err := idInRange(b.HoldModifier, "hold_modifier")
		if err != nil {
			return mapping.BaseKeyMapping{}, err
		}
		if b.ThresholdMs <= 0 || b.ThresholdMs > 0xFFFF {
			return mapping.BaseKeyMapping{}, fmt.Errorf("threshold_ms %d out of range", b.ThresholdMs)
		}
		return mapping.NewTapHold(from, tap, mapping.ModifierID(hold), uint16(b.ThresholdMs)), nil

	case "modified_output", "modifiedoutput":
		to, err := keyCodeByName(b.To)
		if err != nil {
			return mapping.BaseKeyMapping{}, fmt.Errorf("to: %w", err)
		}
		if to.IsPhysicalModifier() {
			return mapping.BaseKeyMapping{}, fmt.Errorf("modified_output 'to' %s is a physical modifier", to)
		}
		return mapping.NewModifiedOutput(from, to, b.Shift, b.Ctrl, b.Alt, b.Win), nil

	default:
		return mapping.BaseKeyMapping{}, fmt.Errorf("unknown base mapping kind %q", b.Kind)
	}
}

func tomlToConditionItem(it tomlConditionItem) (mapping.ConditionItem, error) {
	switch strings.ToLower(it.Kind) {
	case "modifier_active":
		id, err := idInRange(it.ModifierID, "modifier_id")
		if err != nil {
			return mapping.ConditionItem{}, err
		}
		return mapping.ConditionItem{Kind: mapping.ModifierActive, ModifierID: mapping.ModifierID(id)}, nil
	case "lock_active":
		id, err := idInRange(it.LockID, "lock_id")
		if err != nil {
			return mapping.ConditionItem{}, err
		}
		return mapping.ConditionItem{Kind: mapping.LockActive, LockID: mapping.LockID(id)}, nil
	default:
		return mapping.ConditionItem{}, fmt.Errorf("condition item kind %q must be modifier_active or lock_active", it.Kind)
	}
}

func tomlToCondition(c tomlCondition) (mapping.Condition, error) {
	switch strings.ToLower(c.Kind) {
	case "modifier_active":
		id, err := idInRange(c.ModifierID, "modifier_id")
		if err != nil {
			return mapping.Condition{}, err
		}
		return mapping.ModifierActiveCondition(mapping.ModifierID(id)), nil
	case "lock_active":
		id, err := idInRange(c.LockID, "lock_id")
		if err != nil {
			return mapping.Condition{}, err
		}
		return mapping.LockActiveCondition(mapping.LockID(id)), nil
	case "all_active":
		items, err := tomlToItems(c.Items)
		if err != nil {
			return mapping.Condition{}, err
		}
		return mapping.AllActiveCondition(items...), nil
	case "not_active":
		items, err := tomlToItems(c.Items)
		if err != nil {
			return mapping.Condition{}, err
		}
		return mapping.NotActiveCondition(items...), nil
	default:
		return mapping.Condition{}, fmt.Errorf("unknown condition kind %q", c.Kind)
	}
}

func tomlToItems(items []tomlConditionItem) ([]mapping.ConditionItem, error) {
	out := make([]mapping.ConditionItem, 0, len(items))
	for i, it := range items {
		ci, err := tomlToConditionItem(it)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, ci)
	}
	return out, nil
}

// tapHoldKeyCount counts the distinct physical keys configured as TapHold
// across mappings, whether bare or nested inside conditional blocks — every
// such key claims one slot in a device's tap-hold registry at runtime.
func tapHoldKeyCount(mappings []mapping.KeyMapping) int {
	seen := make(map[keycode.KeyCode]bool)
	for _, km := range mappings {
		if km.Conditional {
			for _, b := range km.Mappings {
				if b.Kind == mapping.TapHold {
					seen[b.From] = true
				}
			}
			continue
		}
		if km.Base.Kind == mapping.TapHold {
			seen[km.Base.From] = true
		}
	}
	return len(seen)
}

func tomlToRoot(doc tomlRoot, tapHoldCapacity int) (mapping.ConfigRoot, error) {
	root := mapping.ConfigRoot{
		Version:         doc.Version,
		CompilerVersion: doc.CompilerVersion,
		SourceHash:      doc.SourceHash,
	}

	for di, d := range doc.Device {
		dev := mapping.DeviceConfig{Identifier: d.Identifier}

		seenUnconditionalFrom := make(map[keycode.KeyCode]bool)

		for mi, tm := range d.Mapping {
			if tm.Condition != nil {
				cond, err := tomlToCondition(*tm.Condition)
				if err != nil {
					return mapping.ConfigRoot{}, fmt.Errorf("device %d mapping %d: %w", di, mi, err)
				}
				bases := make([]mapping.BaseKeyMapping, 0, len(tm.Base))
				seenInBlock := make(map[keycode.KeyCode]bool)
				for bi, b := range tm.Base {
					base, err := tomlToBase(b)
					if err != nil {
						return mapping.ConfigRoot{}, fmt.Errorf("device %d mapping %d base %d: %w", di, mi, bi, err)
					}
					if seenInBlock[base.From] {
						return mapping.ConfigRoot{}, fmt.Errorf("device %d mapping %d: duplicate rule for key %s in one conditional block", di, mi, base.From)
					}
					seenInBlock[base.From] = true
					bases = append(bases, base)
				}
				dev.Mappings = append(dev.Mappings, mapping.NewConditional(cond, bases...))
				continue
			}

			base, err := tomlToBase(tomlBase{
				Kind: tm.Kind, From: tm.From, To: tm.To,
				ModifierID: tm.ModifierID, LockID: tm.LockID,
				Tap: tm.Tap, HoldModifier: tm.HoldModifier, ThresholdMs: tm.ThresholdMs,
				Shift: tm.Shift, Ctrl: tm.Ctrl, Alt: tm.Alt, Win: tm.Win,
			})
			if err != nil {
				return mapping.ConfigRoot{}, fmt.Errorf("device %d mapping %d: %w", di, mi, err)
			}
			if seenUnconditionalFrom[base.From] {
				return mapping.ConfigRoot{}, fmt.Errorf("device %d: duplicate unconditional rule for key %s", di, base.From)
			}
			seenUnconditionalFrom[base.From] = true
			dev.Mappings = append(dev.Mappings, mapping.NewBase(base))
		}

		if n := tapHoldKeyCount(dev.Mappings); n > tapHoldCapacity {
			return mapping.ConfigRoot{}, fmt.Errorf("device %d (%s): %d distinct tap-hold keys exceed the configured tap-hold capacity %d", di, dev.Identifier, n, tapHoldCapacity)
		}

		root.Devices = append(root.Devices, dev)
	}

	return root, nil
}

func rootToTOML(root mapping.ConfigRoot) tomlRoot {
	doc := tomlRoot{
		Version:         root.Version,
		CompilerVersion: root.CompilerVersion,
		SourceHash:      root.SourceHash,
	}
	for _, dev := range root.Devices {
		td := tomlDevice{Identifier: dev.Identifier}
		for _, m := range dev.Mappings {
			if !m.Conditional {
				td.Mapping = append(td.Mapping, baseToTOMLMapping(m.Base))
				continue
			}
			tm := tomlMapping{Condition: conditionToTOML(m.Condition)}
			for _, b := range m.Mappings {
				tm.Base = append(tm.Base, baseToTOML(b))
			}
			td.Mapping = append(td.Mapping, tm)
		}
		doc.Device = append(doc.Device, td)
	}
	return doc
}

func baseToTOML(b mapping.BaseKeyMapping) tomlBase {
	out := tomlBase{Kind: baseKindName(b.Kind), From: b.From.String()}
	switch b.Kind {
	case mapping.Simple:
		out.To = b.To.String()
	case mapping.Modifier:
		id := int(b.ModifierID)
		out.ModifierID = &id
	case mapping.Lock:
		id := int(b.LockID)
		out.LockID = &id
	case mapping.TapHold:
		out.Tap = b.Tap.String()
		id := int(b.HoldModifier)
		out.HoldModifier = &id
		out.ThresholdMs = int(b.ThresholdMs)
	case mapping.ModifiedOutput:
		out.To = b.To.String()
		out.Shift, out.Ctrl, out.Alt, out.Win = b.Shift, b.Ctrl, b.Alt, b.Win
	}
	return out
}

func baseToTOMLMapping(b mapping.BaseKeyMapping) tomlMapping {
	tb := baseToTOML(b)
	return tomlMapping{
		Kind: tb.Kind, From: tb.From, To: tb.To,
		ModifierID: tb.ModifierID, LockID: tb.LockID,
		Tap: tb.Tap, HoldModifier: tb.HoldModifier, ThresholdMs: tb.ThresholdMs,
		Shift: tb.Shift, Ctrl: tb.Ctrl, Alt: tb.Alt, Win: tb.Win,
	}
}

func baseKindName(k mapping.BaseKind) string {
	switch k {
	case mapping.Simple:
		return "simple"
	case mapping.Modifier:
		return "modifier"
	case mapping.Lock:
		return "lock"
	case mapping.TapHold:
		return "tap_hold"
	case mapping.ModifiedOutput:
		return "modified_output"
	default:
		return "unknown"
	}
}

func conditionToTOML(c mapping.Condition) *tomlCondition {
	tc := &tomlCondition{}
	switch c.Kind {
	case mapping.ModifierActive:
		tc.Kind = "modifier_active"
		id := int(c.ModifierID)
		tc.ModifierID = &id
	case mapping.LockActive:
		tc.Kind = "lock_active"
		id := int(c.LockID)
		tc.LockID = &id
	case mapping.AllActive:
		tc.Kind = "all_active"
		tc.Items = itemsToTOML(c.Items)
	case mapping.NotActive:
		tc.Kind = "not_active"
		tc.Items = itemsToTOML(c.Items)
	}
	return tc
}

func itemsToTOML(items []mapping.ConditionItem) []tomlConditionItem {
	out := make([]tomlConditionItem, 0, len(items))
	for _, it := range items {
		switch it.Kind {
		case mapping.ModifierActive:
			id := int(it.ModifierID)
			out = append(out, tomlConditionItem{Kind: "modifier_active", ModifierID: &id})
		case mapping.LockActive:
			id := int(it.LockID)
			out = append(out, tomlConditionItem{Kind: "lock_active", LockID: &id})
		}
	}
	return out
}
