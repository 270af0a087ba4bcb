package treecheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const mainConfig = `{
	"meta": {"version": "38.0.0"},
	"file_policy": {"file_creation_restrictions": {"status": "FORBIDDEN"}},
	"core_restrictions": {"immutable_rules": ["file_creation_requires_explicit_approval"]},
	"behavioral_rules": {"core_rules": {"approval_required": true, "never_truncate_policy": true}},
	"universal_standards": {},
	"design_system": {},
	"web_development": {},
	"business_strategy": {},
	"autonomous_operation": {},
	"execution": {},
	"design_intelligence": {}
}`

// buildRepo lays out a complete repository fixture.
func buildRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "prompts.json", mainConfig)
	writeFile(t, root, "prompts-v37.json", `{"meta": {"version": "37.0.0"}}`)

	for _, name := range []string{"behavioral-rules.json", "universal-standards.json", "workflow-engine.json", "quality-gates.json"} {
		writeFile(t, root, filepath.Join("modules", name), `{"module": true}`)
	}
	for _, name := range []string{"web-development.json", "design-system.json", "business-strategy.json", "ai-enhancement.json"} {
		writeFile(t, root, filepath.Join("plugins", name), `{"plugin": true}`)
	}

	for _, rel := range []string{"Gemfile", "config/routes.rb", "app/models/user.rb", "app/controllers/application_controller.rb"} {
		writeFile(t, root, filepath.Join("brgen_app", rel), "# rails\n")
	}
	writeFile(t, root, "brgen_app/test/models/user_test.rb", "# test\n")
	writeFile(t, root, "brgen_app/test/controllers/app_test.rb", "# test\n")

	writeFile(t, root, "rails/brgen/brgen.sh", "#!/bin/sh\n")

	for _, name := range []string{
		"COMPREHENSIVE_INTEGRATION_REPORT.md",
		"CONSOLIDATION_SUMMARY.md",
		"FRAMEWORK_V37_VALIDATION_REPORT.md",
		"MASTER_FRAMEWORK_V37_INTEGRATION_GUIDE.md",
		"BEFORE_AFTER_COMPARISON.md",
		"REFACTORING_SUMMARY.md",
	} {
		writeFile(t, root, name, "# report\n")
	}

	return root
}

func TestRunOnCompleteRepo(t *testing.T) {
	result := NewRunner(buildRepo(t)).Run()

	for _, section := range result.Sections {
		for _, item := range section.Items {
			if !item.OK {
				t.Errorf("section %q: %s failed: %s", section.Name, item.Label, item.Detail)
			}
		}
	}
	assert.True(t, result.OK())
	assert.Equal(t, 0, result.Failed())
}

func TestRunMissingMainConfig(t *testing.T) {
	root := buildRepo(t)
	require.NoError(t, os.Remove(filepath.Join(root, "prompts.json")))

	result := NewRunner(root).Run()

	assert.False(t, result.OK())
	framework := result.Sections[0]
	assert.Equal(t, "framework_components", framework.Name)
	assert.False(t, framework.OK())
	// A missing main config short-circuits the deeper framework checks.
	assert.Len(t, framework.Items, 2)
}

func TestRunDetectsCrossReferences(t *testing.T) {
	root := buildRepo(t)
	writeFile(t, root, "prompts.json", `{
		"meta": {"version": "38.0.0"},
		"file_policy": {"link": "@ref:modules/file-policy"},
		"core_restrictions": {}, "behavioral_rules": {}, "universal_standards": {},
		"design_system": {}, "web_development": {}, "business_strategy": {},
		"autonomous_operation": {}, "execution": {}, "design_intelligence": {}
	}`)

	result := NewRunner(root).Run()

	framework := result.Sections[0]
	var consolidation *Item
	for i := range framework.Items {
		if framework.Items[i].Label == "Consolidation" {
			consolidation = &framework.Items[i]
		}
	}
	require.NotNil(t, consolidation)
	assert.False(t, consolidation.OK)
	assert.Contains(t, consolidation.Detail, "@ref:")
}

func TestRunReportsMissingSections(t *testing.T) {
	root := buildRepo(t)
	writeFile(t, root, "prompts.json", `{"meta": {"version": "38.0.0"}, "file_policy": {}}`)

	result := NewRunner(root).Run()

	framework := result.Sections[0]
	var required *Item
	for i := range framework.Items {
		if framework.Items[i].Label == "Required sections" {
			required = &framework.Items[i]
		}
	}
	require.NotNil(t, required)
	assert.False(t, required.OK)
	assert.Contains(t, required.Detail, "core_restrictions")
}

func TestRunMissingRailsTree(t *testing.T) {
	root := buildRepo(t)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "brgen_app")))

	result := NewRunner(root).Run()

	var rails *Section
	for i := range result.Sections {
		if result.Sections[i].Name == "rails_application" {
			rails = &result.Sections[i]
		}
	}
	require.NotNil(t, rails)
	assert.False(t, rails.OK())
	require.Len(t, rails.Items, 1, "missing tree reports a single directory item")
}

func TestRunMalformedModule(t *testing.T) {
	root := buildRepo(t)
	writeFile(t, root, "modules/workflow-engine.json", `{"broken":`)

	result := NewRunner(root).Run()

	var modular *Section
	for i := range result.Sections {
		if result.Sections[i].Name == "modular_system" {
			modular = &result.Sections[i]
		}
	}
	require.NotNil(t, modular)
	assert.False(t, modular.OK())
}

func TestProber(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/b.txt", "hello")
	writeFile(t, root, "scripts/one.sh", "#!/bin/sh\n")
	writeFile(t, root, "scripts/two.sh", "#!/bin/sh\n")
	writeFile(t, root, "scripts/notes.md", "")

	p := NewProber(root)

	assert.True(t, p.Exists("a/b.txt"))
	assert.False(t, p.Exists("a/c.txt"))

	size, ok := p.Stat("a/b.txt")
	assert.True(t, ok)
	assert.Equal(t, int64(5), size)

	assert.Equal(t, 2, p.CountMatching("scripts", "*.sh"))
	assert.Equal(t, 0, p.CountMatching("absent", "*.sh"))

	probes := p.ProbeAll([]string{"a/b.txt", "missing.txt"})
	require.Len(t, probes, 2)
	assert.True(t, probes[0].Exists)
	assert.False(t, probes[1].Exists)
}
