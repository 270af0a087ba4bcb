// Package reorg reshapes a flat configuration document into named,
// disclosure-tagged groups, and verifies that the reshaping preserved
// every top-level key.
//
// The grouping policy is data: a Schema lists the groups, their
// descriptive fields, and the member keys each group absorbs. A member
// may carry a Split rule that partitions its value into an "essential"
// part and an "advanced" remainder, either by a static sub-key
// allow-list (for objects) or a fixed prefix length (for lists).
package reorg

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/anon987654321/promptkit/pkg/errors"
)

// ReservedMetaKey is the one top-level key excluded from the completeness
// invariant. It is rewritten or copied by an explicit rule, never relocated
// into a group.
const ReservedMetaKey = "meta"

// Static descriptive fields present on every group. These are structural
// labels, not relocated document keys, and the completeness checker
// excludes them from the recovered key set.
const (
	FieldDescription = "description"
	FieldRevealOn    = "reveal_on"
	FieldComplexity  = "complexity"
)

// Schema describes how a source document is regrouped.
type Schema struct {
	// Meta controls the reserved metadata key. The zero value copies the
	// source's meta verbatim.
	Meta MetaRule `yaml:"meta"`

	// Groups are emitted in order after meta.
	Groups []Group `yaml:"groups"`
}

// MetaRule controls the reserved metadata key in the output.
type MetaRule struct {
	// Literal, when non-nil, replaces the source meta wholesale with a
	// fixed value. It is never derived from source content.
	Literal map[string]any `yaml:"literal"`
}

// Group is a named container holding a subset of the original keys.
type Group struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	RevealOn    string   `yaml:"reveal_on"`
	Complexity  string   `yaml:"complexity"`
	Members     []Member `yaml:"members"`
}

// Member places one original top-level key inside a group, either
// verbatim or partitioned by a Split rule.
type Member struct {
	Key   string `yaml:"key"`
	Split *Split `yaml:"split,omitempty"`
}

// Split partitions a member's value into essential and advanced parts.
// Exactly one of Essential or Prefix applies: Essential is the sub-key
// allow-list for object values, Prefix the cut length for list values.
type Split struct {
	Essential []string `yaml:"essential,omitempty"`
	Prefix    int      `yaml:"prefix,omitempty"`
}

// splitsObject reports whether the rule partitions object values.
func (s *Split) splitsObject() bool {
	return len(s.Essential) > 0
}

// LoadSchema reads and validates a grouping schema from a YAML file.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &schema, nil
}

// Validate checks the schema's internal consistency: group names and
// member keys must be unique, members must not collide with the reserved
// metadata key or the static descriptive fields, and split rules must
// declare a policy.
func (s *Schema) Validate() error {
	if len(s.Groups) == 0 {
		return errors.NewValidationError("groups", nil, "schema has no groups")
	}

	groupNames := make(map[string]bool, len(s.Groups))
	memberKeys := make(map[string]string) // key -> owning group

	for _, group := range s.Groups {
		if group.Name == "" {
			return errors.NewValidationError("groups", nil, "group with empty name")
		}
		if group.Name == ReservedMetaKey {
			return errors.NewValidationError("groups", group.Name, "group name collides with reserved metadata key")
		}
		if groupNames[group.Name] {
			return errors.NewValidationError("groups", group.Name, fmt.Sprintf("duplicate group name %q", group.Name))
		}
		groupNames[group.Name] = true

		for _, member := range group.Members {
			if member.Key == "" {
				return errors.NewValidationError(group.Name, nil, "member with empty key")
			}
			if member.Key == ReservedMetaKey {
				return errors.NewValidationError(group.Name, member.Key, "member key collides with reserved metadata key")
			}
			if isStaticField(member.Key) {
				return errors.NewValidationError(group.Name, member.Key, fmt.Sprintf("member key %q collides with a descriptive field", member.Key))
			}
			if owner, seen := memberKeys[member.Key]; seen {
				return errors.NewValidationError(group.Name, member.Key,
					fmt.Sprintf("member key %q already placed in group %q", member.Key, owner))
			}
			memberKeys[member.Key] = group.Name

			if member.Split != nil && !member.Split.splitsObject() && member.Split.Prefix <= 0 {
				return errors.NewValidationError(group.Name, member.Key,
					fmt.Sprintf("split rule for %q declares neither an allow-list nor a positive prefix", member.Key))
			}
		}
	}
	return nil
}

// isStaticField reports whether key is one of the group descriptive fields.
func isStaticField(key string) bool {
	return key == FieldDescription || key == FieldRevealOn || key == FieldComplexity
}
