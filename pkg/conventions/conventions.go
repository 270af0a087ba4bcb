// Package conventions checks a configuration document against the
// framework's self-imposed structural conventions: item-count limits, the
// presence of progressive-disclosure markers, repetition thresholds, and
// self-enforcement indicators.
//
// Except for the item counts, every check here is a heuristic over the
// document's serialized text. Marker scans count literal substrings and
// compare against fixed thresholds; they do not parse or validate the
// sections they detect, and they carry none of the exact guarantees of
// the completeness check in package reorg. Keep the two apart.
package conventions

import (
	"fmt"
	"strings"

	"github.com/anon987654321/promptkit/pkg/document"
)

// Threshold constants for the convention checks.
const (
	// DefaultMaxItems is the item-count limit at the root and one level
	// down, from the 7±2 working-memory guideline.
	DefaultMaxItems = 9

	// RepetitionThreshold is the occurrence count above which a pattern
	// counts as a repetition violation.
	RepetitionThreshold = 10

	// repetitionHighCount is the occurrence count at which a repetition
	// violation is escalated to high severity.
	repetitionHighCount = 20

	// selfEnforcementFloor is the number of indicators that must be
	// present for the self-enforcement check to pass.
	selfEnforcementFloor = 2
)

// Severity grades a violation.
type Severity string

// Violation severities.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// LoadViolation is an item-count limit breach.
type LoadViolation struct {
	Location string   `json:"location"`
	Count    int      `json:"count"`
	Limit    int      `json:"limit"`
	Severity Severity `json:"severity"`
}

// CognitiveLoad is the result of the item-count check.
type CognitiveLoad struct {
	Compliant   bool            `json:"compliant"`
	Violations  []LoadViolation `json:"violations,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

// Disclosure is the result of the progressive-disclosure marker scan.
type Disclosure struct {
	Compliant      bool     `json:"compliant"`
	RevealOn       int      `json:"reveal_on"`
	EssentialFirst int      `json:"essential_first"`
	Complexity     int      `json:"complexity_indicators"`
	Suggestions    []string `json:"suggestions,omitempty"`
}

// RepetitionViolation is a pattern exceeding the repetition threshold.
type RepetitionViolation struct {
	Pattern     string   `json:"pattern"`
	Occurrences int      `json:"occurrences"`
	Threshold   int      `json:"threshold"`
	Severity    Severity `json:"severity"`
}

// Repetition is the result of the repetition (DRY) scan.
type Repetition struct {
	Compliant   bool                  `json:"compliant"`
	Counts      map[string]int        `json:"patterns"`
	Violations  []RepetitionViolation `json:"violations,omitempty"`
	Suggestions []string              `json:"suggestions,omitempty"`
}

// SelfEnforcement is the result of the self-enforcement indicator scan.
type SelfEnforcement struct {
	Compliant   bool            `json:"compliant"`
	Indicators  map[string]bool `json:"indicators"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

// Report aggregates all convention checks for one document.
type Report struct {
	Version         string          `json:"framework_version"`
	CognitiveLoad   CognitiveLoad   `json:"cognitive_load"`
	Disclosure      Disclosure      `json:"progressive_disclosure"`
	Repetition      Repetition      `json:"repetition"`
	SelfEnforcement SelfEnforcement `json:"self_enforcement"`
}

// Passing reports whether every area is compliant.
func (r *Report) Passing() bool {
	return r.CognitiveLoad.Compliant &&
		r.Disclosure.Compliant &&
		r.Repetition.Compliant &&
		r.SelfEnforcement.Compliant
}

// Score returns the fraction of compliant areas.
func (r *Report) Score() float64 {
	areas := []bool{
		r.CognitiveLoad.Compliant,
		r.Disclosure.Compliant,
		r.Repetition.Compliant,
		r.SelfEnforcement.Compliant,
	}
	passing := 0
	for _, ok := range areas {
		if ok {
			passing++
		}
	}
	return float64(passing) / float64(len(areas))
}

// Checker runs the convention checks.
type Checker struct {
	// MaxItems is the item-count limit. Zero means DefaultMaxItems.
	MaxItems int
}

// New returns a Checker with default limits.
func New() *Checker {
	return &Checker{MaxItems: DefaultMaxItems}
}

// Check runs every convention check against doc.
func (c *Checker) Check(doc *document.Document) *Report {
	limit := c.MaxItems
	if limit == 0 {
		limit = DefaultMaxItems
	}
	text := doc.Text()

	report := &Report{
		CognitiveLoad:   checkCognitiveLoad(doc, limit),
		Disclosure:      checkDisclosure(text),
		Repetition:      checkRepetition(text),
		SelfEnforcement: checkSelfEnforcement(text),
	}
	if meta := doc.Section("meta"); meta != nil {
		if v, ok := meta["version"].(string); ok {
			report.Version = v
		}
	}
	if report.Version == "" {
		report.Version = "unknown"
	}
	return report
}

// checkCognitiveLoad verifies item counts at the root and one level of
// nesting. Root breaches are high severity, nested ones medium.
func checkCognitiveLoad(doc *document.Document, limit int) CognitiveLoad {
	var violations []LoadViolation

	if doc.Len() > limit {
		violations = append(violations, LoadViolation{
			Location: "root",
			Count:    doc.Len(),
			Limit:    limit,
			Severity: SeverityHigh,
		})
	}

	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)
		switch v := value.(type) {
		case map[string]any:
			if len(v) > limit {
				violations = append(violations, LoadViolation{
					Location: key,
					Count:    len(v),
					Limit:    limit,
					Severity: SeverityMedium,
				})
			}
		case []any:
			if len(v) > limit {
				violations = append(violations, LoadViolation{
					Location: key,
					Count:    len(v),
					Limit:    limit,
					Severity: SeverityMedium,
				})
			}
		}
	}

	result := CognitiveLoad{
		Compliant:  len(violations) == 0,
		Violations: violations,
	}
	for _, v := range violations {
		if v.Location == "root" {
			result.Suggestions = append(result.Suggestions,
				"Consider grouping related top-level sections under categorical containers")
		} else {
			result.Suggestions = append(result.Suggestions,
				fmt.Sprintf("Implement progressive disclosure for %q (%d items)", v.Location, v.Count))
		}
	}
	return result
}

// checkDisclosure counts progressive-disclosure markers in the text.
// Compliance requires at least one reveal_on or essential_first marker.
func checkDisclosure(text string) Disclosure {
	result := Disclosure{
		RevealOn:       strings.Count(text, `"reveal_on"`),
		EssentialFirst: strings.Count(text, `"essential_first"`),
		Complexity:     strings.Count(text, `"complexity"`),
	}
	result.Compliant = result.RevealOn > 0 || result.EssentialFirst > 0
	if !result.Compliant {
		result.Suggestions = []string{
			"Add reveal_on triggers for complex sections",
			"Implement an essential_first information hierarchy",
			"Add complexity indicators for cognitive load management",
		}
	}
	return result
}

// repetitionPatterns are the literal substrings whose occurrence counts
// feed the repetition heuristic, in report order.
var repetitionPatterns = []string{
	`"required"`,
	`"mandatory"`,
	`validation_required`,
	`error_handling`,
	`"essential"`,
}

// checkRepetition counts the known repetition-prone patterns.
func checkRepetition(text string) Repetition {
	result := Repetition{
		Counts: make(map[string]int, len(repetitionPatterns)),
	}
	for _, pattern := range repetitionPatterns {
		count := strings.Count(text, pattern)
		result.Counts[pattern] = count
		if count > RepetitionThreshold {
			severity := SeverityMedium
			if count >= repetitionHighCount {
				severity = SeverityHigh
			}
			result.Violations = append(result.Violations, RepetitionViolation{
				Pattern:     pattern,
				Occurrences: count,
				Threshold:   RepetitionThreshold,
				Severity:    severity,
			})
		}
	}
	result.Compliant = len(result.Violations) == 0
	if !result.Compliant {
		result.Suggestions = []string{
			"Create reusable pattern libraries for common validations",
			"Abstract repeated validation logic into shared definitions",
			"Consolidate similar error handling approaches",
		}
	}
	return result
}

// enforcementIndicators are the literal substrings whose presence counts
// toward self-enforcement compliance, in report order.
var enforcementIndicators = []string{
	`"self_validated"`,
	`health_check`,
	`"validation_framework"`,
	`"auto_applies"`,
}

// checkSelfEnforcement looks for self-enforcement indicators; at least
// two must be present.
func checkSelfEnforcement(text string) SelfEnforcement {
	result := SelfEnforcement{
		Indicators: make(map[string]bool, len(enforcementIndicators)),
	}
	present := 0
	for _, indicator := range enforcementIndicators {
		found := strings.Contains(text, indicator)
		result.Indicators[indicator] = found
		if found {
			present++
		}
	}
	result.Compliant = present >= selfEnforcementFloor
	if !result.Compliant {
		result.Suggestions = []string{
			"Add framework health check mechanisms",
			"Implement self-validation routines",
			"Create automated enforcement rules",
		}
	}
	return result
}
