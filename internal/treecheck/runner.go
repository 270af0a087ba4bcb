package treecheck

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/anon987654321/promptkit/pkg/document"
)

// refMarker is the cross-reference marker the consolidation effort was
// supposed to eliminate from the main configuration.
const refMarker = "@ref:"

// Item is one check within a validation section.
type Item struct {
	OK     bool
	Label  string
	Detail string
}

// Section groups related checks. Name is a snake_case identifier;
// display casing is the renderer's concern.
type Section struct {
	Name  string
	Items []Item
}

// OK reports whether every item in the section passed.
func (s *Section) OK() bool {
	for _, item := range s.Items {
		if !item.OK {
			return false
		}
	}
	return true
}

// Result is a full validation run.
type Result struct {
	Sections []Section
}

// OK reports whether every section passed.
func (r *Result) OK() bool {
	for i := range r.Sections {
		if !r.Sections[i].OK() {
			return false
		}
	}
	return true
}

// Failed counts the sections with at least one failing item.
func (r *Result) Failed() int {
	failed := 0
	for i := range r.Sections {
		if !r.Sections[i].OK() {
			failed++
		}
	}
	return failed
}

// Runner validates the repository tree. The zero value is unusable; use
// NewRunner, then override the expectation lists in tests as needed.
type Runner struct {
	prober *Prober

	// MainConfig and EngineConfig are the framework documents checked in
	// the framework section.
	MainConfig   string
	EngineConfig string

	// RequiredSections must be present at the top level of MainConfig.
	RequiredSections []string

	// ExpectedModules and ExpectedPlugins are JSON documents that must
	// exist and parse under modules/ and plugins/.
	ExpectedModules []string
	ExpectedPlugins []string

	// RailsAppDir is the Rails application tree, probed for RailsKeyFiles.
	RailsAppDir   string
	RailsKeyFiles []string

	// RailsScriptsDir holds the generator shell scripts.
	RailsScriptsDir string

	// Docs are the report documents expected at the root.
	Docs []string
}

// NewRunner creates a Runner with the repository's standard layout.
func NewRunner(root string) *Runner {
	return &Runner{
		prober:       NewProber(root),
		MainConfig:   "prompts.json",
		EngineConfig: "prompts-v37.json",
		RequiredSections: []string{
			"file_policy",
			"core_restrictions",
			"behavioral_rules",
			"universal_standards",
			"design_system",
			"web_development",
			"business_strategy",
			"autonomous_operation",
			"execution",
			"design_intelligence",
		},
		ExpectedModules: []string{
			"behavioral-rules.json",
			"universal-standards.json",
			"workflow-engine.json",
			"quality-gates.json",
		},
		ExpectedPlugins: []string{
			"web-development.json",
			"design-system.json",
			"business-strategy.json",
			"ai-enhancement.json",
		},
		RailsAppDir: "brgen_app",
		RailsKeyFiles: []string{
			"Gemfile",
			"config/routes.rb",
			"app/models/user.rb",
			"app/controllers/application_controller.rb",
		},
		RailsScriptsDir: filepath.Join("rails", "brgen"),
		Docs: []string{
			"COMPREHENSIVE_INTEGRATION_REPORT.md",
			"CONSOLIDATION_SUMMARY.md",
			"FRAMEWORK_V37_VALIDATION_REPORT.md",
			"MASTER_FRAMEWORK_V37_INTEGRATION_GUIDE.md",
			"BEFORE_AFTER_COMPARISON.md",
			"REFACTORING_SUMMARY.md",
		},
	}
}

// Run executes every validation section.
func (r *Runner) Run() *Result {
	return &Result{Sections: []Section{
		r.checkFramework(),
		r.checkModules(),
		r.checkRailsApp(),
		r.checkRailsScripts(),
		r.checkDocs(),
	}}
}

// loadDoc loads a JSON document relative to the root, returning a check
// item describing the outcome.
func (r *Runner) loadDoc(rel, label string) (*document.Document, Item) {
	doc, err := document.Load(filepath.Join(r.prober.Root, rel))
	if err != nil {
		return nil, Item{OK: false, Label: label, Detail: err.Error()}
	}
	return doc, Item{OK: true, Label: label, Detail: fmt.Sprintf("valid JSON (%d bytes)", len(doc.Text()))}
}

// checkFramework validates the main and engine configurations: both must
// parse, the main config must be fully consolidated (no cross-reference
// markers) and must carry the required sections and marker keys.
func (r *Runner) checkFramework() Section {
	section := Section{Name: "framework_components"}

	main, item := r.loadDoc(r.MainConfig, "Main configuration")
	section.Items = append(section.Items, item)
	engine, item := r.loadDoc(r.EngineConfig, "Modular engine")
	section.Items = append(section.Items, item)

	if main == nil || engine == nil {
		return section
	}

	section.Items = append(section.Items, Item{
		OK:    true,
		Label: "Versions",
		Detail: fmt.Sprintf("main %s, engine %s",
			metaVersion(main), metaVersion(engine)),
	})

	refs := strings.Count(main.Text(), refMarker)
	section.Items = append(section.Items, Item{
		OK:     refs == 0,
		Label:  "Consolidation",
		Detail: refDetail(refs),
	})

	var missing []string
	for _, name := range r.RequiredSections {
		if !main.Has(name) {
			missing = append(missing, name)
		}
	}
	section.Items = append(section.Items, Item{
		OK:     len(missing) == 0,
		Label:  "Required sections",
		Detail: sectionDetail(len(r.RequiredSections), missing),
	})

	section.Items = append(section.Items, r.checkMarkerKeys(main)...)
	return section
}

// checkMarkerKeys verifies the convention marker keys the consolidation
// promised: file creation forbidden, the approval rule immutable, and the
// core behavioral rules present.
func (r *Runner) checkMarkerKeys(main *document.Document) []Item {
	var items []Item

	status := ""
	if policy := main.Section("file_policy"); policy != nil {
		if restrictions, ok := policy["file_creation_restrictions"].(map[string]any); ok {
			status, _ = restrictions["status"].(string)
		}
	}
	items = append(items, Item{
		OK:     status == "FORBIDDEN",
		Label:  "File creation restrictions",
		Detail: fmt.Sprintf("status %q", status),
	})

	immutable := false
	if restrictions := main.Section("core_restrictions"); restrictions != nil {
		if rules, ok := restrictions["immutable_rules"].([]any); ok {
			for _, rule := range rules {
				if rule == "file_creation_requires_explicit_approval" {
					immutable = true
				}
			}
		}
	}
	items = append(items, Item{
		OK:     immutable,
		Label:  "Core restrictions",
		Detail: "immutable approval rule",
	})

	hasCoreRules := false
	if behavioral := main.Section("behavioral_rules"); behavioral != nil {
		if core, ok := behavioral["core_rules"].(map[string]any); ok {
			_, hasApproval := core["approval_required"]
			_, hasTruncate := core["never_truncate_policy"]
			hasCoreRules = hasApproval && hasTruncate
		}
	}
	items = append(items, Item{
		OK:     hasCoreRules,
		Label:  "Behavioral rules",
		Detail: "core rules present",
	})

	return items
}

// checkModules validates the modular plugin system documents.
func (r *Runner) checkModules() Section {
	section := Section{Name: "modular_system"}

	for _, name := range r.ExpectedModules {
		_, item := r.loadDoc(filepath.Join("modules", name), "Module: "+name)
		section.Items = append(section.Items, item)
	}
	for _, name := range r.ExpectedPlugins {
		_, item := r.loadDoc(filepath.Join("plugins", name), "Plugin: "+name)
		section.Items = append(section.Items, item)
	}
	return section
}

// checkRailsApp probes the Rails application tree for its key files.
// Files are checked for presence only.
func (r *Runner) checkRailsApp() Section {
	section := Section{Name: "rails_application"}

	if !r.prober.Exists(r.RailsAppDir) {
		section.Items = append(section.Items, Item{
			OK:     false,
			Label:  "Application directory",
			Detail: r.RailsAppDir + " not found",
		})
		return section
	}

	for _, rel := range r.RailsKeyFiles {
		full := filepath.Join(r.RailsAppDir, rel)
		section.Items = append(section.Items, Item{
			OK:     r.prober.Exists(full),
			Label:  "Rails file: " + rel,
			Detail: full,
		})
	}

	testDir := filepath.Join(r.RailsAppDir, "test")
	testCount := r.prober.CountRecursive(testDir, ".rb")
	section.Items = append(section.Items, Item{
		OK:     r.prober.Exists(testDir),
		Label:  "Test suite",
		Detail: fmt.Sprintf("%d test files", testCount),
	})
	return section
}

// checkRailsScripts counts the generator shell scripts.
func (r *Runner) checkRailsScripts() Section {
	section := Section{Name: "rails_scripts"}

	count := r.prober.CountMatching(r.RailsScriptsDir, "*.sh")
	section.Items = append(section.Items, Item{
		OK:     r.prober.Exists(r.RailsScriptsDir) && count > 0,
		Label:  "Generator scripts",
		Detail: fmt.Sprintf("%d shell scripts in %s", count, r.RailsScriptsDir),
	})
	return section
}

// checkDocs verifies the report documents exist.
func (r *Runner) checkDocs() Section {
	section := Section{Name: "documentation"}

	for _, probe := range r.prober.ProbeAll(r.Docs) {
		section.Items = append(section.Items, Item{
			OK:     probe.Exists,
			Label:  "Documentation: " + probe.Path,
			Detail: fmt.Sprintf("%d bytes", probe.Size),
		})
	}
	return section
}

func metaVersion(doc *document.Document) string {
	if meta := doc.Section("meta"); meta != nil {
		if v, ok := meta["version"].(string); ok {
			return v
		}
	}
	return "unknown"
}

func refDetail(refs int) string {
	if refs == 0 {
		return "no cross-references, all content inlined"
	}
	return fmt.Sprintf("%d %s references remain", refs, refMarker)
}

func sectionDetail(total int, missing []string) string {
	if len(missing) == 0 {
		return fmt.Sprintf("all %d present", total)
	}
	return "missing: " + strings.Join(missing, ", ")
}
