// Package lookup precomputes, from one device's ordered rule list, the
// structure that resolves a physical key plus the current device state to
// the single BaseKeyMapping that should fire.
package lookup

import (
	"github.com/bnema/keyrd/internal/keycode"
	"github.com/bnema/keyrd/internal/mapping"
)

type conditionalRule struct {
	condition mapping.Condition
	byFrom    map[keycode.KeyCode][]mapping.BaseKeyMapping
}

// Index is the precomputed lookup structure for one DeviceConfig. The zero
// value is not usable; build one with Build.
type Index struct {
	conditionals []conditionalRule
	unconditional map[keycode.KeyCode]mapping.BaseKeyMapping
}

// Build partitions cfg's mappings into conditional rules (kept in
// declaration order) and unconditional base rules (indexed by From key,
// first occurrence wins for a duplicate From within the unconditional set).
func Build(cfg mapping.DeviceConfig) *Index {
	idx := &Index{
		unconditional: make(map[keycode.KeyCode]mapping.BaseKeyMapping),
	}
	for _, m := range cfg.Mappings {
		if !m.Conditional {
			if _, exists := idx.unconditional[m.Base.From]; !exists {
				idx.unconditional[m.Base.From] = m.Base
			}
			continue
		}
		byFrom := make(map[keycode.KeyCode]mapping.BaseKeyMapping, len(m.Mappings))
		for _, b := range m.Mappings {
			if _, exists := byFrom[b.From]; !exists {
				byFrom[b.From] = b
			}
		}
		idx.conditionals = append(idx.conditionals, conditionalRule{
			condition: m.Condition,
			byFrom:    byFrom,
		})
	}
	return idx
}

// Lookup returns the BaseKeyMapping that should fire for key under state, and
// true, or the zero value and false for passthrough. Declaration order is
// authoritative: the first conditional rule whose condition holds and which
// maps key wins, even if a later conditional also holds. The unconditional
// rule is consulted only if no conditional rule matched.
func (idx *Index) Lookup(key keycode.KeyCode, s mapping.ConditionState) (mapping.BaseKeyMapping, bool) {
	for _, c := range idx.conditionals {
		if !c.condition.Satisfied(s) {
			continue
		}
		if b, ok := c.byFrom[key]; ok {
			return b, true
		}
	}
	b, ok := idx.unconditional[key]
	return b, ok
}
