package reorg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anon987654321/promptkit/pkg/errors"
	"github.com/anon987654321/promptkit/pkg/reorg"
)

func TestDefaultSchemaIsValid(t *testing.T) {
	require.NoError(t, reorg.DefaultSchema().Validate())
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name    string
		schema  *reorg.Schema
		wantErr string
	}{
		{
			name:    "no groups",
			schema:  &reorg.Schema{},
			wantErr: "no groups",
		},
		{
			name: "empty group name",
			schema: &reorg.Schema{Groups: []reorg.Group{
				{Name: "", Members: []reorg.Member{{Key: "a"}}},
			}},
			wantErr: "empty name",
		},
		{
			name: "group named meta",
			schema: &reorg.Schema{Groups: []reorg.Group{
				{Name: "meta", Members: []reorg.Member{{Key: "a"}}},
			}},
			wantErr: "reserved",
		},
		{
			name: "duplicate group name",
			schema: &reorg.Schema{Groups: []reorg.Group{
				{Name: "g", Members: []reorg.Member{{Key: "a"}}},
				{Name: "g", Members: []reorg.Member{{Key: "b"}}},
			}},
			wantErr: "duplicate group",
		},
		{
			name: "member key placed twice",
			schema: &reorg.Schema{Groups: []reorg.Group{
				{Name: "g1", Members: []reorg.Member{{Key: "a"}}},
				{Name: "g2", Members: []reorg.Member{{Key: "a"}}},
			}},
			wantErr: "already placed",
		},
		{
			name: "member key is meta",
			schema: &reorg.Schema{Groups: []reorg.Group{
				{Name: "g", Members: []reorg.Member{{Key: "meta"}}},
			}},
			wantErr: "reserved",
		},
		{
			name: "member key collides with descriptive field",
			schema: &reorg.Schema{Groups: []reorg.Group{
				{Name: "g", Members: []reorg.Member{{Key: "reveal_on"}}},
			}},
			wantErr: "descriptive field",
		},
		{
			name: "split without policy",
			schema: &reorg.Schema{Groups: []reorg.Group{
				{Name: "g", Members: []reorg.Member{{Key: "a", Split: &reorg.Split{}}}},
			}},
			wantErr: "neither an allow-list nor a positive prefix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), "expected a validation error, got %T", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	src := `
meta:
  literal:
    version: "39.0.0"
groups:
  - name: core_framework
    description: Essential framework components
    reveal_on: immediate
    complexity: medium
    members:
      - key: core
      - key: behavioral_rules
        split:
          essential: [approval_required, surgical_precision]
      - key: principles
        split:
          prefix: 7
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	schema, err := reorg.LoadSchema(path)
	require.NoError(t, err)

	assert.Equal(t, "39.0.0", schema.Meta.Literal["version"])
	require.Len(t, schema.Groups, 1)
	group := schema.Groups[0]
	assert.Equal(t, "core_framework", group.Name)
	assert.Equal(t, "immediate", group.RevealOn)
	require.Len(t, group.Members, 3)
	assert.Nil(t, group.Members[0].Split)
	assert.Equal(t, []string{"approval_required", "surgical_precision"}, group.Members[1].Split.Essential)
	assert.Equal(t, 7, group.Members[2].Split.Prefix)
}

func TestLoadSchemaMissingFile(t *testing.T) {
	_, err := reorg.LoadSchema(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsIOError(err))
}

func TestLoadSchemaMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("groups: [unclosed"), 0o644))

	_, err := reorg.LoadSchema(path)
	require.Error(t, err)
	assert.True(t, errors.IsParseError(err))
}

func TestLoadSchemaInvalidSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	src := `
groups:
  - name: g1
    members:
      - key: core
  - name: g2
    members:
      - key: core
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	_, err := reorg.LoadSchema(path)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
