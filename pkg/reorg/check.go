package reorg

import (
	"sort"

	"github.com/anon987654321/promptkit/pkg/document"
)

// Report is the result of a completeness check between a source document
// and its reorganized form.
//
// The check is an exact key-set comparison: every original top-level key
// except the reserved metadata key must be recoverable from exactly the
// member slots of the output groups. Member keys the schema lists but the
// source lacks are placeholder slots, not fabrications. The check does
// not compare values, so a key preserved by name could still carry an
// altered value; the split partition laws are verified separately by the
// reorganizer's tests.
type Report struct {
	// OriginalCount is the number of source keys checked (meta excluded).
	OriginalCount int

	// RecoveredCount is the number of member keys found across groups.
	RecoveredCount int

	// GroupCount is the number of top-level groups in the output
	// (meta excluded).
	GroupCount int

	// Missing lists original keys absent from the output. Non-empty
	// means data was lost.
	Missing []string

	// Extra lists output member keys with no counterpart in the source
	// or the schema. Non-empty means a key was fabricated or misspelled.
	Extra []string
}

// OK reports whether the check passed.
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}

// Check compares the top-level keys of src against the member keys
// recoverable from dst. The schema distinguishes placeholder slots from
// fabricated keys: a recovered key missing from the source is Extra only
// when no group in the schema lists it as a member.
func Check(src, dst *document.Document, schema *Schema) *Report {
	original := make(map[string]bool)
	for _, key := range src.Keys() {
		if key != ReservedMetaKey {
			original[key] = true
		}
	}

	scheduled := make(map[string]bool)
	if schema != nil {
		for _, group := range schema.Groups {
			for _, member := range group.Members {
				scheduled[member.Key] = true
			}
		}
	}

	recovered := make(map[string]bool)
	groups := 0
	for _, name := range dst.Keys() {
		if name == ReservedMetaKey {
			continue
		}
		value, _ := dst.Get(name)
		members, ok := groupMembers(value)
		if !ok {
			continue
		}
		groups++
		for _, key := range members {
			if !isStaticField(key) {
				recovered[key] = true
			}
		}
	}

	report := &Report{
		OriginalCount:  len(original),
		RecoveredCount: len(recovered),
		GroupCount:     groups,
	}
	for key := range original {
		if !recovered[key] {
			report.Missing = append(report.Missing, key)
		}
	}
	for key := range recovered {
		if !original[key] && !scheduled[key] {
			report.Extra = append(report.Extra, key)
		}
	}
	sort.Strings(report.Missing)
	sort.Strings(report.Extra)
	return report
}

// groupMembers returns the keys of a group container. Groups built in
// memory are ordered objects; groups reloaded from disk are plain maps.
// Anything else is not a group and contributes no member keys.
func groupMembers(value any) ([]string, bool) {
	switch g := value.(type) {
	case *document.Object:
		return g.Keys(), true
	case map[string]any:
		return document.SortedKeys(g), true
	default:
		return nil, false
	}
}
