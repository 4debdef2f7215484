package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// OverrideMap forces a semantic kind for specific blocks or format
// groups, taking precedence over heuristic classification. Reverting an
// entry removes it entirely; there is no tombstone state, so a reverted
// block behaves exactly as if it was never overridden.
//
// Group entries exist only for paragraph-stream input, where the group
// is the unit of user interaction; markup-path blocks are addressed by
// index.
type OverrideMap struct {
	blocks map[int]BlockKind
	groups map[string]BlockKind
}

// NewOverrideMap creates an empty override map.
func NewOverrideMap() *OverrideMap {
	return &OverrideMap{
		blocks: make(map[int]BlockKind),
		groups: make(map[string]BlockKind),
	}
}

// SetBlock overrides one block by index.
func (m *OverrideMap) SetBlock(index int, kind BlockKind) {
	m.blocks[index] = kind
}

// SetGroup overrides every block carrying the given format signature.
func (m *OverrideMap) SetGroup(signature string, kind BlockKind) {
	m.groups[signature] = kind
}

// RevertBlock removes a block override.
func (m *OverrideMap) RevertBlock(index int) {
	delete(m.blocks, index)
}

// RevertGroup removes a group override.
func (m *OverrideMap) RevertGroup(signature string) {
	delete(m.groups, signature)
}

// Resolve returns the kind to render b with: group override first, then
// block override, then the block's original kind.
func (m *OverrideMap) Resolve(b *Block) BlockKind {
	if m == nil {
		return b.OriginalKind
	}
	if b.Group != "" {
		if k, ok := m.groups[b.Group]; ok {
			return k
		}
	}
	if k, ok := m.blocks[b.Index]; ok {
		return k
	}
	return b.OriginalKind
}

// Len returns the number of override entries.
func (m *OverrideMap) Len() int {
	return len(m.blocks) + len(m.groups)
}

// Apply parses one "key=kind" assignment. An integer key addresses a
// block index, anything else a group signature. Used by the CLI
// --override flag.
func (m *OverrideMap) Apply(spec string) error {
	key, value, found := strings.Cut(spec, "=")
	if !found || key == "" {
		return fmt.Errorf("invalid override %q, want key=kind", spec)
	}
	kind, err := ParseKind(value)
	if err != nil {
		return fmt.Errorf("invalid override %q: %w", spec, err)
	}
	if index, err := strconv.Atoi(key); err == nil {
		m.SetBlock(index, kind)
		return nil
	}
	m.SetGroup(key, kind)
	return nil
}
