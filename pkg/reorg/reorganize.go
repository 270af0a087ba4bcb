package reorg

import (
	"fmt"

	"github.com/anon987654321/promptkit/pkg/document"
	"github.com/anon987654321/promptkit/pkg/errors"
)

// Split container sub-keys.
const (
	partEssential = "essential"
	partAdvanced  = "advanced"
)

// Reorganize builds a new document from src according to schema. The
// source document is not modified.
//
// The output holds meta first, then each schema group in order. A group
// carries its three descriptive fields followed by one slot per member.
// A member key absent from the source yields an empty placeholder rather
// than an error: optional sections are tolerated. A member with a split
// rule yields an object with "essential" and "advanced" parts that
// partition the original value exactly.
func Reorganize(src *document.Document, schema *Schema) (*document.Document, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	out := document.New()
	out.Set(ReservedMetaKey, metaValue(src, schema))

	for _, group := range schema.Groups {
		g := document.NewObject()
		g.Set(FieldDescription, group.Description)
		g.Set(FieldRevealOn, group.RevealOn)
		g.Set(FieldComplexity, group.Complexity)

		for _, member := range group.Members {
			slot, err := buildSlot(src, group.Name, member)
			if err != nil {
				return nil, err
			}
			g.Set(member.Key, slot)
		}
		out.Set(group.Name, g)
	}

	return out, nil
}

// metaValue resolves the reserved metadata key: a schema literal when one
// is declared, otherwise the source value verbatim (or an empty object
// when the source has none).
func metaValue(src *document.Document, schema *Schema) any {
	if schema.Meta.Literal != nil {
		return schema.Meta.Literal
	}
	if v, ok := src.Get(ReservedMetaKey); ok {
		return v
	}
	return map[string]any{}
}

// buildSlot produces the value stored under a member key.
func buildSlot(src *document.Document, groupName string, member Member) (any, error) {
	value, present := src.Get(member.Key)

	if member.Split == nil {
		if !present {
			// Empty placeholder for an optional section.
			return map[string]any{}, nil
		}
		return value, nil
	}

	if !present {
		return emptySplit(member.Split), nil
	}

	essential, advanced, err := Partition(value, member.Split)
	if err != nil {
		return nil, errors.NewValidationError(groupName, member.Key,
			fmt.Sprintf("cannot split %q: %v", member.Key, err))
	}

	slot := document.NewObject()
	slot.Set(partEssential, essential)
	slot.Set(partAdvanced, advanced)
	return slot, nil
}

// emptySplit returns the placeholder for a split member missing from the
// source: an empty partition of the shape the rule expects.
func emptySplit(split *Split) *document.Object {
	slot := document.NewObject()
	if split.splitsObject() {
		slot.Set(partEssential, map[string]any{})
		slot.Set(partAdvanced, map[string]any{})
	} else {
		slot.Set(partEssential, []any{})
		slot.Set(partAdvanced, []any{})
	}
	return slot
}

// Partition splits value per the rule. For object values the essential
// part is the sub-map restricted to the allow-list and the advanced part
// holds every remaining key; the two never overlap and together
// reconstruct the original. For list values the essential part is the
// first min(Prefix, len) elements and the advanced part the rest, so
// their concatenation equals the original list.
func Partition(value any, split *Split) (essential, advanced any, err error) {
	if split.splitsObject() {
		m, ok := value.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("allow-list split requires an object, got %T", value)
		}
		allowed := make(map[string]bool, len(split.Essential))
		for _, k := range split.Essential {
			allowed[k] = true
		}
		ess := make(map[string]any)
		adv := make(map[string]any)
		for k, v := range m {
			if allowed[k] {
				ess[k] = v
			} else {
				adv[k] = v
			}
		}
		return ess, adv, nil
	}

	list, ok := value.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("prefix split requires a list, got %T", value)
	}
	cut := split.Prefix
	if cut > len(list) {
		cut = len(list)
	}
	ess := make([]any, cut)
	copy(ess, list[:cut])
	adv := make([]any, len(list)-cut)
	copy(adv, list[cut:])
	return ess, adv, nil
}
