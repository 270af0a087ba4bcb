package reorg

// ListSplitPrefix is the default prefix length for list splits, from the
// 7±2 working-memory guideline the framework organizes itself around.
const ListSplitPrefix = 7

// DefaultSchema returns the built-in grouping schema: seven top-level
// groups absorbing the framework's flat sections, with split rules for
// the sections whose essential subset is known up front. The allow-lists
// are fixed policy tables; changing the splitting policy means changing
// these tables, not the reorganizer.
func DefaultSchema() *Schema {
	return &Schema{
		Groups: []Group{
			{
				Name:        "core_framework",
				Description: "Essential framework components - always visible",
				RevealOn:    "immediate",
				Complexity:  "medium",
				Members: []Member{
					{Key: "core"},
					{Key: "universal_standards"},
					{Key: "behavioral_rules", Split: &Split{Essential: []string{
						"approval_required",
						"full_internalization",
						"never_truncate_policy",
						"surgical_precision",
					}}},
					{Key: "principles", Split: &Split{Prefix: ListSplitPrefix}},
				},
			},
			{
				Name:        "development_domains",
				Description: "Domain-specific development standards and tools",
				RevealOn:    "domain_specific_project_detected",
				Complexity:  "high",
				Members: []Member{
					{Key: "web_development", Split: &Split{Essential: []string{
						"responsive_design",
						"accessibility",
						"performance",
						"semantic_html",
						"css_architecture",
					}}},
					{Key: "design_system", Split: &Split{Essential: []string{
						"typography",
						"color_system",
						"spacing",
						"component_library",
					}}},
					{Key: "music_audio_processing"},
					{Key: "file_processing"},
				},
			},
			{
				Name:        "ai_and_automation",
				Description: "AI enhancement, automation, and intelligent capabilities",
				RevealOn:    "ai_features_needed",
				Complexity:  "high",
				Members: []Member{
					{Key: "ai_enhancement"},
					{Key: "specialized_capabilities"},
					{Key: "autonomous_completion"},
				},
			},
			{
				Name:        "business_and_communication",
				Description: "Business strategy and communication standards",
				RevealOn:    "business_context_needed",
				Complexity:  "medium",
				Members: []Member{
					{Key: "business_strategy"},
					{Key: "communication"},
				},
			},
			{
				Name:        "quality_and_standards",
				Description: "Quality assurance, formatting, and validation standards",
				RevealOn:    "quality_validation_needed",
				Complexity:  "medium",
				Members: []Member{
					{Key: "quality"},
					{Key: "formatting"},
					{Key: "documentation"},
					{Key: "validation_enhancement"},
					{Key: "_validation"},
				},
			},
			{
				Name:        "operations_and_workflow",
				Description: "Workflow management, monitoring, and operational concerns",
				RevealOn:    "operational_management_needed",
				Complexity:  "medium",
				Members: []Member{
					{Key: "workflow"},
					{Key: "monitoring"},
					{Key: "execution", Split: &Split{Essential: []string{
						"validation_gates",
						"error_handling",
						"rollback_mechanisms",
					}}},
					{Key: "system_configurations"},
					{Key: "infrastructure_preservation"},
				},
			},
			{
				Name:        "framework_management",
				Description: "Framework self-management, optimization, and maintenance",
				RevealOn:    "framework_maintenance_needed",
				Complexity:  "high",
				Members: []Member{
					{Key: "self_optimization"},
					{Key: "cross_reference_integrity_system"},
					{Key: "change_management"},
					{Key: "framework_self_optimization"},
					{Key: "eof_metadata"},
				},
			},
		},
	}
}
